package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type FileGormRepository struct {
	db *gorm.DB
}

func NewFileGormRepository(db *gorm.DB) *FileGormRepository {
	return &FileGormRepository{db: db}
}

func (r *FileGormRepository) Save(ctx context.Context, f model.StoredFile) error {
	if err := r.db.WithContext(ctx).Create(&f).Error; err != nil {
		return err
	}
	return nil
}

func (r *FileGormRepository) FindByID(ctx context.Context, id string) (model.StoredFile, error) {
	var f model.StoredFile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.StoredFile{}, repo.ErrNotFound
	}
	if err != nil {
		return model.StoredFile{}, err
	}
	return f, nil
}
