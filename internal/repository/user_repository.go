package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error

	//見つからなければ (nil, nil)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.User, error)

	//KYC未承認のreseller/oem
	ListUnverified(ctx context.Context, types []model.UserType) ([]model.User, error)

	SetVerified(ctx context.Context, id int64) error

	//ダッシュボード向けの件数
	CountAll(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountCreatedBefore(ctx context.Context, before time.Time) (int64, error)
}
