package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type NotificationUsecase struct {
	notifications repo.NotificationRepository
}

func NewNotificationUsecase(notifications repo.NotificationRepository) *NotificationUsecase {
	return &NotificationUsecase{notifications: notifications}
}

func (u *NotificationUsecase) ListAll(ctx context.Context) ([]model.Notification, error) {
	notifications, err := u.notifications.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return notifications, nil
}

// 大口注文の問い合わせ通知を発行する。
func (u *NotificationUsecase) CreateBulkEnquiry(ctx context.Context, userEmail string) (model.Notification, error) {
	if strings.TrimSpace(userEmail) == "" {
		return model.Notification{}, NewHTTPError(http.StatusBadRequest, "user email is required")
	}

	n := model.Notification{
		UserEmail: userEmail,
		Type:      model.NotificationBulkOrderEnquiry,
	}
	id, err := u.notifications.Create(ctx, n)
	if err != nil {
		return model.Notification{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	n.ID = id
	return n, nil
}
