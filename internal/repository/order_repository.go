package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//決済レコードを持つ注文だけ、新しい順
	ListWithPayment(ctx context.Context) ([]model.Order, error)

	//承認待ち一覧用
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//承認の確定：合計・割引・ステータスを1回の更新で書き込む
	ApplyApproval(ctx context.Context, orderID int64, newTotal int64, discount int64) error

	//請求書メール送信済みフラグ（承認トランザクションの外で呼ぶ）
	MarkEmailSent(ctx context.Context, orderID int64) error
}
