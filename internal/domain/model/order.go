package model

import "time"

type OrderStatus string

const (
	OrderStatusNotVerified OrderStatus = "not-verified"
	OrderStatusPending     OrderStatus = "pending"
	OrderStatusPlaced      OrderStatus = "placed"
	OrderStatusProcessing  OrderStatus = "processing"
	OrderStatusShipped     OrderStatus = "shipped"
	OrderStatusDelivered   OrderStatus = "delivered"
	OrderStatusCancelled   OrderStatus = "cancelled"
)

// ValidOrderStatusは管理画面から設定できるステータスかどうかを返す。
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusNotVerified, OrderStatusPending, OrderStatusPlaced,
		OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	}
	return false
}

// 注文は削除しない。ステータス更新と承認フローだけが書き換える。
type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64       `gorm:"not null;index" json:"user_id"`
	PaymentID   *int64      `gorm:"index" json:"payment_id,omitempty"`
	TotalAmount int64       `gorm:"not null" json:"total_amount"`
	Discount    int64       `gorm:"not null;default:0" json:"discount"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	IsEmailSent bool        `gorm:"not null;default:false" json:"is_email_sent"`

	ShippingAddress Address `gorm:"serializer:json" json:"shipping_address"`
	BillingAddress  Address `gorm:"serializer:json" json:"billing_address"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
