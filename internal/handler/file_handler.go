package handler

import (
	"fmt"
	"io"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ファイル配信。内容はUUIDで不変なので長期キャッシュを許可する
type FileHandler struct {
	uc *usecase.FileUsecase
}

func NewFileHandler(uc *usecase.FileUsecase) *FileHandler {
	return &FileHandler{uc: uc}
}

func (h *FileHandler) RegisterRoutes(public *echo.Group, admin *echo.Group) {
	public.GET("/files/:id", h.get)
	admin.POST("/files", h.upload)
}

func (h *FileHandler) get(c echo.Context) error {
	f, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	etag := `"` + f.MD5 + `"`
	c.Response().Header().Set("ETag", etag)
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", f.Filename))

	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.Blob(http.StatusOK, f.ContentType, f.Content)
}

func (h *FileHandler) upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file required"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
	}

	f, err := h.uc.Upload(c.Request().Context(), usecase.UploadFileInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"id":   f.ID,
		"path": "/api/files/" + f.ID,
	})
}
