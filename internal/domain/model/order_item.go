package model

import "time"

// 注文の明細。
// 単価は注文作成時点のスナップショットで、以後の商品価格からは再計算しない。
type OrderItem struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64     `gorm:"not null;index" json:"order_id"`
	ProductID         int64     `gorm:"not null;index" json:"product_id"`
	Quantity          int64     `gorm:"not null" json:"quantity"`
	UnitPriceSnapshot int64     `gorm:"not null;column:unit_price_snapshot" json:"unit_price_snapshot"`
	VoltageSelected   float64   `gorm:"not null;default:0" json:"voltage_selected"`
	AhSelected        float64   `gorm:"not null;default:0" json:"ah_selected"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
