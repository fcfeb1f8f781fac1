package model

import "time"

// PDFから抽出した請求書情報。検索専用。
type InvoiceRecord struct {
	ID            int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	BillNumber    string   `gorm:"type:varchar(100);not null;index" json:"bill_number"`
	SerialNumbers []string `gorm:"serializer:json" json:"serial_numbers"`
	//抽出したままの日付文字列（DD/MM/YYYY）
	Date      string    `gorm:"type:varchar(20)" json:"date"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
