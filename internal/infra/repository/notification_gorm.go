package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) ListAll(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&notifications).Error
	if err != nil {
		return []model.Notification{}, err
	}
	return notifications, nil
}

func (r *NotificationGormRepository) Create(ctx context.Context, n model.Notification) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&n).Error; err != nil {
		return 0, err
	}
	return n.ID, nil
}
