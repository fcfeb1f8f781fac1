package repository

import (
	"context"

	"app/internal/domain/model"
)

type PaymentRepository interface {
	FindByID(ctx context.Context, id int64) (model.Payment, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Payment, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error)
	Create(ctx context.Context, p model.Payment) (int64, error)
}
