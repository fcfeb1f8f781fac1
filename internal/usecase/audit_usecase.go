package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AuditLogUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditLogUsecase(auditRepo repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{auditRepo: auditRepo}
}

type ListAuditLogsInput struct {
	ActorEmail string
	Action     string
	Resource   string
	ResourceID int64
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

func (u *AuditLogUsecase) List(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	filter := repo.AuditLogFilter{
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if in.ActorEmail != "" {
		filter.ActorEmail = &in.ActorEmail
	}
	if in.Action != "" {
		a := model.AuditAction(in.Action)
		switch a {
		case model.AuditActionApproveOrder, model.AuditActionUpdateOrderStatus,
			model.AuditActionVerifyUser, model.AuditActionUpdateStock:
		default:
			return nil, NewHTTPError(http.StatusBadRequest, "invalid action")
		}
		filter.Action = &a
	}
	if in.Resource != "" {
		rt := model.AuditResourceType(in.Resource)
		switch rt {
		case model.AuditResourceOrder, model.AuditResourceProduct, model.AuditResourceUser:
		default:
			return nil, NewHTTPError(http.StatusBadRequest, "invalid resource type")
		}
		filter.ResourceType = &rt
	}
	if in.ResourceID > 0 {
		filter.ResourceID = &in.ResourceID
	}
	filter.CreatedFrom = in.From
	filter.CreatedTo = in.To

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
