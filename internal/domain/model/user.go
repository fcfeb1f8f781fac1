package model

import "time"

type UserType string

const (
	UserTypeIndividual UserType = "individual"
	UserTypeReseller   UserType = "reseller"
	UserTypeOEM        UserType = "oem"
)

// 請求先 / 配送先住所
type Address struct {
	Type    string `json:"type"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
}

// KYC書類への参照（アップロード済みファイルのパス）
type KYCDocuments struct {
	Aadhaar string `json:"aadhaar"`
	PAN     string `json:"pan"`
	GSTIN   string `json:"gstin,omitempty"`
}

type User struct {
	ID           int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string       `gorm:"type:varchar(255);not null" json:"name"`
	Email        string       `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string       `gorm:"column:password_hash;not null" json:"-"`
	UserType     UserType     `gorm:"type:varchar(20);not null;default:'individual';index" json:"user_type"`
	IsVerified   bool         `gorm:"not null;default:false;index" json:"is_verified"`
	Addresses    []Address    `gorm:"serializer:json" json:"addresses"`
	Documents    KYCDocuments `gorm:"serializer:json" json:"documents"`
	CreatedAt    time.Time    `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
