package repository

import (
	"context"

	"app/internal/domain/model"
)

type NotificationRepository interface {
	//新しい順
	ListAll(ctx context.Context) ([]model.Notification, error)
	Create(ctx context.Context, n model.Notification) (int64, error)
}
