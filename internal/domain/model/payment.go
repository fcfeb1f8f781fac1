package model

import "time"

type PaymentMode string

const (
	PaymentModeOnline PaymentMode = "online"
	PaymentModeCOD    PaymentMode = "cod"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// 注文と1対1の決済レコード
type Payment struct {
	ID      int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64       `gorm:"not null;uniqueIndex" json:"order_id"`
	Amount  int64       `gorm:"not null" json:"amount"`
	Mode    PaymentMode `gorm:"type:varchar(20);not null;default:'online'" json:"mode"`

	//決済ゲートウェイ側の識別子
	GatewayOrderID   string `gorm:"type:varchar(255);index" json:"gateway_order_id,omitempty"`
	GatewayPaymentID string `gorm:"type:varchar(255)" json:"gateway_payment_id,omitempty"`
	GatewaySignature string `gorm:"type:varchar(255)" json:"-"`

	Status    PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
