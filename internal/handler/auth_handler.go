package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者ログイン
type AuthHandler struct {
	uc *usecase.AdminAuthUsecase
}

func NewAuthHandler(uc *usecase.AdminAuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(public *echo.Group, admin *echo.Group) {
	public.POST("/login", h.login)
	admin.GET("/verify-token", h.verifyToken)
}

func (h *AuthHandler) login(c echo.Context) error {
	var in usecase.AdminLoginInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Login(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// AuthJWTを通過していればトークンは有効
func (h *AuthHandler) verifyToken(c echo.Context) error {
	email, _ := middleware.AdminEmailFromContext(c)
	return c.JSON(http.StatusOK, map[string]any{"valid": true, "email": email})
}
