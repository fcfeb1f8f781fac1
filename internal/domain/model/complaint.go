package model

import "time"

type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "open"
	ComplaintStatusInProgress ComplaintStatus = "in progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusClosed     ComplaintStatus = "closed"
)

type ComplaintPriority string

const (
	ComplaintPriorityLow    ComplaintPriority = "low"
	ComplaintPriorityMedium ComplaintPriority = "medium"
	ComplaintPriorityHigh   ComplaintPriority = "high"
)

func ValidComplaintStatus(s string) bool {
	switch ComplaintStatus(s) {
	case ComplaintStatusOpen, ComplaintStatusInProgress,
		ComplaintStatusResolved, ComplaintStatusClosed:
		return true
	}
	return false
}

func ValidComplaintPriority(s string) bool {
	switch ComplaintPriority(s) {
	case ComplaintPriorityLow, ComplaintPriorityMedium, ComplaintPriorityHigh:
		return true
	}
	return false
}

// 担当者
type Assignee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// 問い合わせスレッドの1件
type ComplaintMessage struct {
	Role      string    `json:"role"` // user / support
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// サポートチケット。ticket_idが外部向けの識別子。
type Complaint struct {
	ID           int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64              `gorm:"not null;index" json:"user_id"`
	TicketID     string             `gorm:"type:varchar(64);not null;uniqueIndex" json:"ticket_id"`
	Category     string             `gorm:"type:varchar(100);not null" json:"category"`
	InvoiceNo    string             `gorm:"type:varchar(100);not null" json:"invoice_no"`
	SerialNumber string             `gorm:"type:varchar(100);not null" json:"serial_number"`
	Description  string             `gorm:"type:text;not null" json:"description"`
	Images       []string           `gorm:"serializer:json" json:"images"`
	Status       ComplaintStatus    `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	Priority     ComplaintPriority  `gorm:"type:varchar(20);not null;default:'low'" json:"priority"`
	Assignees    []Assignee         `gorm:"serializer:json" json:"assignees"`
	Messages     []ComplaintMessage `gorm:"serializer:json" json:"messages"`
	CreatedAt    time.Time          `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
