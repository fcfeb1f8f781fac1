package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/invoiceextract"
	repo "app/internal/repository"
)

type InvoiceUsecase struct {
	invoices repo.InvoiceRepository
}

func NewInvoiceUsecase(invoices repo.InvoiceRepository) *InvoiceUsecase {
	return &InvoiceUsecase{invoices: invoices}
}

type ExtractInvoiceInput struct {
	Text string `json:"text" validate:"required"`
}

type ExtractInvoiceOutput struct {
	BillNumber    string   `json:"bill_number"`
	Date          string   `json:"date"`
	SerialNumbers []string `json:"serial_numbers"`
	Found         bool     `json:"found"`
}

// PDFから抽出済みのテキストに正規表現をかける。ベストエフォート。
func (u *InvoiceUsecase) Extract(ctx context.Context, in ExtractInvoiceInput) ExtractInvoiceOutput {
	out := ExtractInvoiceOutput{
		SerialNumbers: invoiceextract.ExtractSerials(in.Text),
	}
	if bill, ok := invoiceextract.ExtractBill(in.Text); ok {
		out.BillNumber = bill.BillNumber
		out.Date = bill.Date
		out.Found = true
	}
	return out
}

type SaveInvoiceInput struct {
	BillNumber    string   `json:"bill_number" validate:"required"`
	SerialNumbers []string `json:"serial_numbers" validate:"required,min=1"`
	Date          string   `json:"date"`
}

func (u *InvoiceUsecase) Save(ctx context.Context, in SaveInvoiceInput) (model.InvoiceRecord, error) {
	rec := model.InvoiceRecord{
		BillNumber:    strings.TrimSpace(in.BillNumber),
		SerialNumbers: in.SerialNumbers,
		Date:          in.Date,
	}
	if rec.BillNumber == "" {
		return model.InvoiceRecord{}, NewHTTPError(http.StatusBadRequest, "bill number is required")
	}

	id, err := u.invoices.Create(ctx, rec)
	if err != nil {
		return model.InvoiceRecord{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	rec.ID = id
	return rec, nil
}

func (u *InvoiceUsecase) FindByBillNumber(ctx context.Context, billNumber string) (model.InvoiceRecord, error) {
	if strings.TrimSpace(billNumber) == "" {
		return model.InvoiceRecord{}, NewHTTPError(http.StatusBadRequest, "invoice number is required")
	}
	rec, err := u.invoices.FindByBillNumber(ctx, billNumber)
	if errors.Is(err, repo.ErrNotFound) {
		return model.InvoiceRecord{}, NewHTTPError(http.StatusNotFound, "invoice not found")
	}
	if err != nil {
		return model.InvoiceRecord{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rec, nil
}

func (u *InvoiceUsecase) FindBySerialNumber(ctx context.Context, serial string) (model.InvoiceRecord, error) {
	if strings.TrimSpace(serial) == "" {
		return model.InvoiceRecord{}, NewHTTPError(http.StatusBadRequest, "serial number is required")
	}
	rec, err := u.invoices.FindBySerialNumber(ctx, serial)
	if errors.Is(err, repo.ErrNotFound) {
		return model.InvoiceRecord{}, NewHTTPError(http.StatusNotFound, "invoice not found")
	}
	if err != nil {
		return model.InvoiceRecord{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rec, nil
}

func (u *InvoiceUsecase) ListAll(ctx context.Context) ([]model.InvoiceRecord, error) {
	recs, err := u.invoices.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return recs, nil
}

func (u *InvoiceUsecase) DeleteAll(ctx context.Context) error {
	if err := u.invoices.DeleteAll(ctx); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
