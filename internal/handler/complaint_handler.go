package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ComplaintHandler struct {
	uc *usecase.ComplaintUsecase

	getOps map[string]func(echo.Context) error
	putOps map[string]func(echo.Context, complaintUpdateRequest) error
}

func NewComplaintHandler(uc *usecase.ComplaintUsecase) *ComplaintHandler {
	h := &ComplaintHandler{uc: uc}
	h.getOps = map[string]func(echo.Context) error{
		"getAllComplaints":  h.allComplaints,
		"getNewOrdersCount": h.openCount,
	}
	h.putOps = map[string]func(echo.Context, complaintUpdateRequest) error{
		"statusUpdate":   h.statusUpdate,
		"priorityUpdate": h.priorityUpdate,
		"assigneeUpdate": h.assigneeUpdate,
	}
	return h
}

func (h *ComplaintHandler) RegisterRoutes(public *echo.Group, admin *echo.Group) {
	public.POST("/complaints", h.create)

	admin.GET("/complaints", h.get)
	admin.PUT("/complaints", h.put)
}

func (h *ComplaintHandler) get(c echo.Context) error {
	op, ok := h.getOps[c.QueryParam("queryType")]
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query type"})
	}
	return op(c)
}

func (h *ComplaintHandler) allComplaints(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"complaints": out})
}

func (h *ComplaintHandler) openCount(c echo.Context) error {
	count, err := h.uc.OpenCount(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

func (h *ComplaintHandler) create(c echo.Context) error {
	var in usecase.CreateComplaintInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	}

	complaint, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, complaint)
}

// 更新はupdateTypeで種別を判定し、種別ごとに使う項目が決まる
type complaintUpdateRequest struct {
	UpdateType string `json:"updateType" validate:"required"`
	TicketID   string `json:"ticketId" validate:"required"`

	Status   string `json:"status"`
	Priority string `json:"priority"`

	AssigneeName  string `json:"assigneeName"`
	AssigneeEmail string `json:"assigneeEmail"`
}

func (h *ComplaintHandler) put(c echo.Context) error {
	var req complaintUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	}

	op, ok := h.putOps[req.UpdateType]
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid update type"})
	}
	return op(c, req)
}

func (h *ComplaintHandler) statusUpdate(c echo.Context, req complaintUpdateRequest) error {
	if err := h.uc.UpdateField(c.Request().Context(), req.TicketID, "status", req.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "complaint updated"})
}

func (h *ComplaintHandler) priorityUpdate(c echo.Context, req complaintUpdateRequest) error {
	if err := h.uc.UpdateField(c.Request().Context(), req.TicketID, "priority", req.Priority); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "complaint updated"})
}

func (h *ComplaintHandler) assigneeUpdate(c echo.Context, req complaintUpdateRequest) error {
	if err := h.uc.Assign(c.Request().Context(), req.TicketID, req.AssigneeName, req.AssigneeEmail); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "assignee updated"})
}
