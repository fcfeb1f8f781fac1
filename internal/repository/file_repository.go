package repository

import (
	"context"

	"app/internal/domain/model"
)

type FileRepository interface {
	Save(ctx context.Context, f model.StoredFile) error
	FindByID(ctx context.Context, id string) (model.StoredFile, error)
}
