package handler

import (
	"net/http"
	"strconv"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 注文APIはqueryTypeで分岐する。未知の値は即400
type OrderHandler struct {
	uc *usecase.OrderUsecase

	getOps map[string]func(echo.Context) error
	putOps map[string]func(echo.Context) error
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	h := &OrderHandler{uc: uc}
	h.getOps = map[string]func(echo.Context) error{
		"orderById":       h.orderByID,
		"allOrders":       h.allOrders,
		"forVerification": h.forVerification,
	}
	h.putOps = map[string]func(echo.Context) error{
		"approveOrder": h.approveOrder,
		"statusUpdate": h.statusUpdate,
	}
	return h
}

func (h *OrderHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/orders", h.get)
	admin.PUT("/orders", h.put)
}

func (h *OrderHandler) get(c echo.Context) error {
	op, ok := h.getOps[c.QueryParam("queryType")]
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query type"})
	}
	return op(c)
}

func (h *OrderHandler) put(c echo.Context) error {
	op, ok := h.putOps[c.QueryParam("queryType")]
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query type"})
	}
	return op(c)
}

func (h *OrderHandler) orderByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.QueryParam("orderId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order id"})
	}

	out, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) allOrders(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"orders": out})
}

func (h *OrderHandler) forVerification(c echo.Context) error {
	out, err := h.uc.ListForVerification(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"orders": out})
}

type approveOrderRequest struct {
	OrderID  int64 `json:"orderId" validate:"required"`
	Discount int64 `json:"discount"`
}

func (h *OrderHandler) approveOrder(c echo.Context) error {
	var req approveOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	}

	actor, _ := middleware.AdminEmailFromContext(c)

	if err := h.uc.Approve(c.Request().Context(), actor, req.OrderID, req.Discount); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "order placed"})
}

type statusUpdateRequest struct {
	OrderID int64  `json:"orderId" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

func (h *OrderHandler) statusUpdate(c echo.Context) error {
	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	}

	actor, _ := middleware.AdminEmailFromContext(c)

	if err := h.uc.UpdateStatus(c.Request().Context(), actor, req.OrderID, req.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "status updated"})
}
