package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Sort     string
	//顧客区分でカテゴリの見える範囲が変わる（oem以外はBatteriesのみ）
	UserType model.UserType
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	Categories(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SetUserTypePrice(ctx context.Context, id int64, t model.UserType, price int64) error
	SoftDelete(ctx context.Context, id int64) error
}
