package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

type FileUsecase struct {
	files repo.FileRepository
}

func NewFileUsecase(files repo.FileRepository) *FileUsecase {
	return &FileUsecase{files: files}
}

func (u *FileUsecase) Get(ctx context.Context, id string) (model.StoredFile, error) {
	f, err := u.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.StoredFile{}, NewHTTPError(http.StatusNotFound, "file not found")
		}
		return model.StoredFile{}, err
	}
	return f, nil
}

type UploadFileInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

func (u *FileUsecase) Upload(ctx context.Context, in UploadFileInput) (model.StoredFile, error) {
	if len(in.Content) == 0 {
		return model.StoredFile{}, NewHTTPError(http.StatusBadRequest, "empty file")
	}
	if in.ContentType == "" {
		in.ContentType = "application/octet-stream"
	}

	sum := md5.Sum(in.Content)
	f := model.StoredFile{
		ID:          uuid.NewString(),
		Filename:    in.Filename,
		ContentType: in.ContentType,
		MD5:         hex.EncodeToString(sum[:]),
		Content:     in.Content,
	}
	if err := u.files.Save(ctx, f); err != nil {
		return model.StoredFile{}, err
	}
	return f, nil
}
