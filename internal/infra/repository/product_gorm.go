package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 検索/カテゴリ/ソート/ページング付きの一覧。
// oem以外の顧客区分はBatteriesカテゴリに固定する。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("name LIKE ? OR specs LIKE ? OR category LIKE ?", like, like, like)
	}

	if q.UserType == model.UserTypeOEM {
		if q.Category != "" && q.Category != "all" {
			tx = tx.Where("category = ?", q.Category)
		}
	} else {
		tx = tx.Where("category = ?", "Batteries")
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	switch q.Sort {
	case "price-low":
		tx = tx.Order("price asc")
	case "price-high":
		tx = tx.Order("price desc")
	case "newest":
		tx = tx.Order("created_at desc")
	default: // featured
		tx = tx.Order("name asc")
	}

	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 12
	}

	err := tx.Preload("SubProducts").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

func (r *ProductGormRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Distinct("category").
		Where("category <> ''").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("SubProducts").Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	var products []model.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	if err := r.db.WithContext(ctx).Save(&p).Error; err != nil {
		return err
	}
	return nil
}

// 顧客区分別の価格を設定。individualは基本価格も揃える。
func (r *ProductGormRepository) SetUserTypePrice(ctx context.Context, id int64, t model.UserType, price int64) error {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	if err != nil {
		return err
	}

	switch t {
	case model.UserTypeIndividual:
		p.Pricing.Individual = &price
		p.Price = price
	case model.UserTypeReseller:
		p.Pricing.Reseller = &price
	case model.UserTypeOEM:
		p.Pricing.OEM = &price
	}

	return r.db.WithContext(ctx).Save(&p).Error
}

func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
