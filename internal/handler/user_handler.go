package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	uc *usecase.UserUsecase

	getOps map[string]func(echo.Context) error
}

func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	h := &UserHandler{uc: uc}
	h.getOps = map[string]func(echo.Context) error{
		"forVerification":        h.forVerification,
		"forVerificationbyEmail": h.forVerificationByEmail,
	}
	return h
}

func (h *UserHandler) RegisterRoutes(public *echo.Group, admin *echo.Group) {
	public.POST("/users/register", h.register)
	public.POST("/users/login", h.login)

	admin.GET("/users", h.get)
	admin.PUT("/users", h.verify)
	admin.GET("/analytics/users", h.analytics)
}

func (h *UserHandler) register(c echo.Context) error {
	var in usecase.RegisterUserInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	}

	out, err := h.uc.Register(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *UserHandler) login(c echo.Context) error {
	var in usecase.LoginUserInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	}

	out, err := h.uc.Login(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) get(c echo.Context) error {
	op, ok := h.getOps[c.QueryParam("queryType")]
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query type"})
	}
	return op(c)
}

func (h *UserHandler) forVerification(c echo.Context) error {
	users, err := h.uc.ListForVerification(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) forVerificationByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email required"})
	}

	user, err := h.uc.FindForVerificationByEmail(c.Request().Context(), email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

type verifyUserRequest struct {
	UserID int64 `json:"userId" validate:"required"`
}

func (h *UserHandler) verify(c echo.Context) error {
	if c.QueryParam("queryType") != "verifyUser" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query type"})
	}

	var req verifyUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	}

	actor, _ := middleware.AdminEmailFromContext(c)

	if err := h.uc.Verify(c.Request().Context(), actor, req.UserID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "user verified"})
}

func (h *UserHandler) analytics(c echo.Context) error {
	out, err := h.uc.Analytics(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
