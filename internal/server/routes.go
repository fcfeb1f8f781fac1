package server

import (
	"app/internal/config"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
)

// /api配下に公開ルートと管理者ルートを張る。
// 管理者側はJWT必須
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	public := e.Group("/api")
	admin := e.Group("/api", middleware.AuthJWT(cfg))

	h.Auth.RegisterRoutes(public, admin)
	h.Products.RegisterRoutes(public, admin)
	h.Users.RegisterRoutes(public, admin)
	h.Complaints.RegisterRoutes(public, admin)
	h.Notifications.RegisterRoutes(public, admin)
	h.Files.RegisterRoutes(public, admin)

	h.Orders.RegisterRoutes(admin)
	h.Invoices.RegisterRoutes(admin)
	h.AuditLogs.RegisterRoutes(admin)
}
