package repository

import (
	"context"

	"app/internal/domain/model"
)

// チケットの部分更新で書き換えてよいカラム
type ComplaintField string

const (
	ComplaintFieldStatus   ComplaintField = "status"
	ComplaintFieldPriority ComplaintField = "priority"
)

type ComplaintRepository interface {
	//新しい順
	ListAll(ctx context.Context) ([]model.Complaint, error)
	CountByStatus(ctx context.Context, status model.ComplaintStatus) (int64, error)
	FindByTicketID(ctx context.Context, ticketID string) (model.Complaint, error)

	Create(ctx context.Context, c model.Complaint) (int64, error)

	//存在しないticketIDはErrNotFound
	UpdateField(ctx context.Context, ticketID string, field ComplaintField, value string) error
	ReplaceAssignees(ctx context.Context, ticketID string, assignees []model.Assignee) error
}
