package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type InvoiceGormRepository struct {
	db *gorm.DB
}

func NewInvoiceGormRepository(db *gorm.DB) *InvoiceGormRepository {
	return &InvoiceGormRepository{db: db}
}

func (r *InvoiceGormRepository) Create(ctx context.Context, rec model.InvoiceRecord) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (r *InvoiceGormRepository) FindByBillNumber(ctx context.Context, billNumber string) (model.InvoiceRecord, error) {
	var rec model.InvoiceRecord
	err := r.db.WithContext(ctx).Where("bill_number = ?", billNumber).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.InvoiceRecord{}, repo.ErrNotFound
	}
	if err != nil {
		return model.InvoiceRecord{}, err
	}
	return rec, nil
}

// serial_numbersはJSON配列で保存しているため、LIKEで絞ってからメモリ上で厳密に照合する。
func (r *InvoiceGormRepository) FindBySerialNumber(ctx context.Context, serial string) (model.InvoiceRecord, error) {
	var candidates []model.InvoiceRecord
	err := r.db.WithContext(ctx).
		Where("serial_numbers LIKE ?", "%"+serial+"%").
		Find(&candidates).Error
	if err != nil {
		return model.InvoiceRecord{}, err
	}

	for _, rec := range candidates {
		for _, sn := range rec.SerialNumbers {
			if sn == serial {
				return rec, nil
			}
		}
	}
	return model.InvoiceRecord{}, repo.ErrNotFound
}

func (r *InvoiceGormRepository) ListAll(ctx context.Context) ([]model.InvoiceRecord, error) {
	var recs []model.InvoiceRecord
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&recs).Error; err != nil {
		return []model.InvoiceRecord{}, err
	}
	return recs, nil
}

func (r *InvoiceGormRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.InvoiceRecord{}).Error
}
