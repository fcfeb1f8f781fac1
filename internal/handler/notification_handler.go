package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	uc *usecase.NotificationUsecase
}

func NewNotificationHandler(uc *usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(public *echo.Group, admin *echo.Group) {
	public.POST("/notifications/bulk-enquiry", h.createBulkEnquiry)
	admin.GET("/notifications", h.list)
}

func (h *NotificationHandler) list(c echo.Context) error {
	notifications, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"notifications": notifications})
}

type bulkEnquiryRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *NotificationHandler) createBulkEnquiry(c echo.Context) error {
	var req bulkEnquiryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	}

	n, err := h.uc.CreateBulkEnquiry(c.Request().Context(), req.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}
