package model

import (
	"time"

	"gorm.io/gorm"
)

// 顧客区分ごとの価格上書き。nilなら基本価格を使う。
type UserTypePricing struct {
	Individual *int64 `json:"individual,omitempty"`
	Reseller   *int64 `json:"reseller,omitempty"`
	OEM        *int64 `json:"oem,omitempty"`
}

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductCode string `gorm:"type:varchar(64);not null;uniqueIndex" json:"product_code"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Category    string `gorm:"type:varchar(100);not null;index" json:"category"`
	Specs       string `gorm:"type:text" json:"specs"`

	//基本価格（最小通貨単位）
	Price   int64           `gorm:"not null" json:"price"`
	Pricing UserTypePricing `gorm:"serializer:json" json:"pricing"`

	//在庫は注文承認と管理者編集だけが増減させる
	Stock       int64 `gorm:"not null;default:0" json:"stock"`
	MinQuantity int64 `gorm:"not null;default:1" json:"min_quantity"`

	VoltageRatings []string     `gorm:"serializer:json" json:"voltage_ratings"`
	AhRatings      []string     `gorm:"serializer:json" json:"ah_ratings"`
	SubProducts    []SubProduct `gorm:"foreignKey:ProductID" json:"sub_products"`
	Images         []string     `gorm:"serializer:json" json:"images"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// バッテリーのサブバリアント（型番・電圧・容量）
type SubProduct struct {
	ID            int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     int64   `gorm:"not null;index" json:"product_id"`
	ModelNo       string  `gorm:"type:varchar(100);not null" json:"model_no"`
	VoltageRating float64 `gorm:"not null" json:"voltage_rating"`
	AhRating      float64 `gorm:"not null" json:"ah_rating"`
}

// PriceForは顧客区分に応じた販売価格を返す。
func (p Product) PriceFor(t UserType) int64 {
	switch t {
	case UserTypeIndividual:
		if p.Pricing.Individual != nil {
			return *p.Pricing.Individual
		}
	case UserTypeReseller:
		if p.Pricing.Reseller != nil {
			return *p.Pricing.Reseller
		}
	case UserTypeOEM:
		if p.Pricing.OEM != nil {
			return *p.Pricing.OEM
		}
	}
	return p.Price
}
