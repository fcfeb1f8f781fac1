package model

import "time"

// アップロードされたバイナリ（KYC書類・商品画像・苦情の添付）。
// MD5はETag用。
type StoredFile struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Filename    string    `gorm:"type:varchar(255);not null" json:"filename"`
	ContentType string    `gorm:"type:varchar(100);not null" json:"content_type"`
	MD5         string    `gorm:"type:varchar(32);not null" json:"md5"`
	Content     []byte    `gorm:"not null" json:"-"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
