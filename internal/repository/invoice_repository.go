package repository

import (
	"context"

	"app/internal/domain/model"
)

type InvoiceRepository interface {
	Create(ctx context.Context, rec model.InvoiceRecord) (int64, error)
	FindByBillNumber(ctx context.Context, billNumber string) (model.InvoiceRecord, error)

	//シリアル番号を含むレコードを1件返す
	FindBySerialNumber(ctx context.Context, serial string) (model.InvoiceRecord, error)
	ListAll(ctx context.Context) ([]model.InvoiceRecord, error)
	DeleteAll(ctx context.Context) error
}
