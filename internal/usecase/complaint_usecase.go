package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

type ComplaintUsecase struct {
	complaints repo.ComplaintRepository
	users      repo.UserRepository
}

func NewComplaintUsecase(complaints repo.ComplaintRepository, users repo.UserRepository) *ComplaintUsecase {
	return &ComplaintUsecase{complaints: complaints, users: users}
}

type ComplaintUserOutput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ComplaintOutput struct {
	model.Complaint
	User ComplaintUserOutput `json:"user"`
}

func (u *ComplaintUsecase) ListAll(ctx context.Context) ([]ComplaintOutput, error) {
	complaints, err := u.complaints.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	userIDs := make([]int64, 0, len(complaints))
	for _, c := range complaints {
		userIDs = append(userIDs, c.UserID)
	}
	users, err := u.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	userByID := make(map[int64]model.User, len(users))
	for _, usr := range users {
		userByID[usr.ID] = usr
	}

	outs := make([]ComplaintOutput, 0, len(complaints))
	for _, c := range complaints {
		out := ComplaintOutput{Complaint: c}
		if usr, ok := userByID[c.UserID]; ok {
			out.User = ComplaintUserOutput{Name: usr.Name, Email: usr.Email}
		}
		outs = append(outs, out)
	}
	return outs, nil
}

func (u *ComplaintUsecase) OpenCount(ctx context.Context) (int64, error) {
	n, err := u.complaints.CountByStatus(ctx, model.ComplaintStatusOpen)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return n, nil
}

type CreateComplaintInput struct {
	UserID       int64    `json:"user_id" validate:"required,gt=0"`
	Category     string   `json:"category" validate:"required"`
	InvoiceNo    string   `json:"invoice_no" validate:"required"`
	SerialNumber string   `json:"serial_number" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Images       []string `json:"images"`
}

func (u *ComplaintUsecase) Create(ctx context.Context, in CreateComplaintInput) (model.Complaint, error) {
	c := model.Complaint{
		UserID:       in.UserID,
		TicketID:     "TKT-" + strings.ToUpper(uuid.NewString()[:8]),
		Category:     in.Category,
		InvoiceNo:    in.InvoiceNo,
		SerialNumber: in.SerialNumber,
		Description:  in.Description,
		Images:       in.Images,
		Status:       model.ComplaintStatusOpen,
		Priority:     model.ComplaintPriorityLow,
	}

	id, err := u.complaints.Create(ctx, c)
	if err != nil {
		return model.Complaint{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	c.ID = id
	return c, nil
}

// 書き換えられるのはstatusとpriorityだけ。任意のフィールド名は受けない。
func (u *ComplaintUsecase) UpdateField(ctx context.Context, ticketID string, field string, value string) error {
	if strings.TrimSpace(ticketID) == "" {
		return NewHTTPError(http.StatusBadRequest, "ticket id is required")
	}

	var column repo.ComplaintField
	switch field {
	case "status":
		if !model.ValidComplaintStatus(value) {
			return NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		column = repo.ComplaintFieldStatus
	case "priority":
		if !model.ValidComplaintPriority(value) {
			return NewHTTPError(http.StatusBadRequest, "invalid priority")
		}
		column = repo.ComplaintFieldPriority
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid field")
	}

	err := u.complaints.UpdateField(ctx, ticketID, column, value)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "complaint not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 担当者リストを1名に置き換える。
func (u *ComplaintUsecase) Assign(ctx context.Context, ticketID string, name string, email string) error {
	if strings.TrimSpace(ticketID) == "" {
		return NewHTTPError(http.StatusBadRequest, "ticket id is required")
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return NewHTTPError(http.StatusBadRequest, "assignee name and email are required")
	}

	err := u.complaints.ReplaceAssignees(ctx, ticketID, []model.Assignee{{Name: name, Email: email}})
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "complaint not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
