package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
	auditRepo     repo.AuditLogRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

// 一覧の入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Sort     string
	UserType string
}

type ProductListOutput struct {
	Items      []model.Product `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int64           `json:"total_pages"`
	HasNext    bool            `json:"has_next"`
	HasPrev    bool            `json:"has_prev"`
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 || limit > 100 {
		limit = 12
	}
	if len(in.Search) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}
	switch in.Sort {
	case "", "featured", "price-low", "price-high", "newest":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	userType := model.UserType(in.UserType)
	switch userType {
	case "", model.UserTypeIndividual, model.UserTypeReseller, model.UserTypeOEM:
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid user type")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:     page,
		Limit:    limit,
		Search:   strings.TrimSpace(in.Search),
		Category: in.Category,
		Sort:     in.Sort,
		UserType: userType,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return ProductListOutput{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    int64(page*limit) < total,
		HasPrev:    page > 1,
	}, nil
}

func (u *ProductUsecase) Categories(ctx context.Context) ([]string, error) {
	categories, err := u.productRepo.Categories(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return categories, nil
}

func (u *ProductUsecase) GetByID(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 追加の入力DTO
type SubProductInput struct {
	ModelNo       string  `json:"model_no" validate:"required"`
	VoltageRating float64 `json:"voltage_rating" validate:"required"`
	AhRating      float64 `json:"ah_rating" validate:"required"`
}

type AddProductInput struct {
	Name           string            `json:"name" validate:"required"`
	Category       string            `json:"category" validate:"required"`
	Price          int64             `json:"price" validate:"required,gt=0"`
	Specs          string            `json:"specs"`
	MinQuantity    int64             `json:"min_quantity"`
	Stock          int64             `json:"stock" validate:"gte=0"`
	Images         []string          `json:"images"`
	VoltageRatings []string          `json:"voltage_ratings"`
	AhRatings      []string          `json:"ah_ratings"`
	SubProducts    []SubProductInput `json:"sub_products" validate:"dive"`
}

func (u *ProductUsecase) Add(ctx context.Context, in AddProductInput) (model.Product, error) {
	minQty := in.MinQuantity
	if minQty < 1 {
		minQty = 1
	}
	images := in.Images
	if len(images) == 0 {
		images = []string{"/placeholder.svg"}
	}

	subs := make([]model.SubProduct, 0, len(in.SubProducts))
	for _, s := range in.SubProducts {
		subs = append(subs, model.SubProduct{
			ModelNo:       s.ModelNo,
			VoltageRating: s.VoltageRating,
			AhRating:      s.AhRating,
		})
	}

	p := model.Product{
		ProductCode:    fmt.Sprintf("prod-%d", time.Now().UnixMilli()),
		Name:           in.Name,
		Category:       in.Category,
		Specs:          in.Specs,
		Price:          in.Price,
		Stock:          in.Stock,
		MinQuantity:    minQty,
		VoltageRatings: in.VoltageRatings,
		AhRatings:      in.AhRatings,
		SubProducts:    subs,
		Images:         images,
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 部分更新の入力DTO。nilのフィールドは触らない。
type UpdateProductInput struct {
	Name           *string           `json:"name,omitempty"`
	Category       *string           `json:"category,omitempty"`
	Price          *int64            `json:"price,omitempty" validate:"omitempty,gt=0"`
	Specs          *string           `json:"specs,omitempty"`
	MinQuantity    *int64            `json:"min_quantity,omitempty" validate:"omitempty,gte=1"`
	Stock          *int64            `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Images         []string          `json:"images,omitempty"`
	VoltageRatings []string          `json:"voltage_ratings,omitempty"`
	AhRatings      []string          `json:"ah_ratings,omitempty"`
	SubProducts    []SubProductInput `json:"sub_products,omitempty" validate:"omitempty,dive"`
}

func (u *ProductUsecase) Update(ctx context.Context, actorEmail string, id int64, in UpdateProductInput) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	oldStock := p.Stock

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Specs != nil {
		p.Specs = *in.Specs
	}
	if in.MinQuantity != nil {
		p.MinQuantity = *in.MinQuantity
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.VoltageRatings != nil {
		p.VoltageRatings = in.VoltageRatings
	}
	if in.AhRatings != nil {
		p.AhRatings = in.AhRatings
	}
	if in.SubProducts != nil {
		subs := make([]model.SubProduct, 0, len(in.SubProducts))
		for _, s := range in.SubProducts {
			subs = append(subs, model.SubProduct{
				ProductID:     p.ID,
				ModelNo:       s.ModelNo,
				VoltageRating: s.VoltageRating,
				AhRating:      s.AhRating,
			})
		}
		p.SubProducts = subs
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//手動の在庫編集は監査ログに残す
	if in.Stock != nil && *in.Stock != oldStock {
		_ = u.auditRepo.Create(ctx, model.AuditLog{
			ActorEmail:   actorEmail,
			Action:       model.AuditActionUpdateStock,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   p.ID,
			BeforeJSON:   fmt.Sprintf(`{"stock":%d}`, oldStock),
			AfterJSON:    fmt.Sprintf(`{"stock":%d}`, *in.Stock),
			CreatedAt:    time.Now(),
		})
	}

	return p, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.productRepo.SoftDelete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type SetUserTypePriceInput struct {
	UserType string `json:"user_type" validate:"required,oneof=individual reseller oem"`
	Price    int64  `json:"price" validate:"required,gt=0"`
}

// 顧客区分別価格の設定。individualは基本価格も同期する。
func (u *ProductUsecase) SetUserTypePrice(ctx context.Context, id int64, in SetUserTypePriceInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.productRepo.SetUserTypePrice(ctx, id, model.UserType(in.UserType), in.Price)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
