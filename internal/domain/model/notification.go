package model

import "time"

type NotificationType string

const (
	NotificationBulkOrderEnquiry NotificationType = "BULK_ORDER_ENQUIRY"
)

type Notification struct {
	ID        int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserEmail string           `gorm:"type:varchar(255);not null" json:"user_email"`
	Type      NotificationType `gorm:"type:varchar(50);not null" json:"type"`
	CreatedAt time.Time        `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
