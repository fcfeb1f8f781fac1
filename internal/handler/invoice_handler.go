package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type InvoiceHandler struct {
	uc *usecase.InvoiceUsecase

	getOps map[string]func(echo.Context) error
}

func NewInvoiceHandler(uc *usecase.InvoiceUsecase) *InvoiceHandler {
	h := &InvoiceHandler{uc: uc}
	h.getOps = map[string]func(echo.Context) error{
		"invoice":  h.byBillNumber,
		"serialNo": h.bySerialNumber,
	}
	return h
}

func (h *InvoiceHandler) RegisterRoutes(admin *echo.Group) {
	admin.POST("/invoices", h.save)
	admin.POST("/invoices/extract", h.extract)
	admin.GET("/invoices", h.get)
	admin.GET("/invoices/all", h.list)
	admin.DELETE("/invoices", h.deleteAll)
}

func (h *InvoiceHandler) extract(c echo.Context) error {
	var in usecase.ExtractInvoiceInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	}

	out := h.uc.Extract(c.Request().Context(), in)
	return c.JSON(http.StatusOK, out)
}

func (h *InvoiceHandler) save(c echo.Context) error {
	var in usecase.SaveInvoiceInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	}

	rec, err := h.uc.Save(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *InvoiceHandler) get(c echo.Context) error {
	op, ok := h.getOps[c.QueryParam("type")]
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query type"})
	}
	return op(c)
}

func (h *InvoiceHandler) byBillNumber(c echo.Context) error {
	number := c.QueryParam("number")
	if number == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "number required"})
	}

	rec, err := h.uc.FindByBillNumber(c.Request().Context(), number)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *InvoiceHandler) bySerialNumber(c echo.Context) error {
	number := c.QueryParam("number")
	if number == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "number required"})
	}

	rec, err := h.uc.FindBySerialNumber(c.Request().Context(), number)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *InvoiceHandler) list(c echo.Context) error {
	records, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"invoices": records})
}

func (h *InvoiceHandler) deleteAll(c echo.Context) error {
	if err := h.uc.DeleteAll(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "invoices deleted"})
}
