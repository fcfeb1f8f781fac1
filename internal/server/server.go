package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i any) error {
	return rv.v.Struct(i)
}

type Handlers struct {
	Auth          *handler.AuthHandler
	Products      *handler.ProductHandler
	Orders        *handler.OrderHandler
	Users         *handler.UserHandler
	Complaints    *handler.ComplaintHandler
	Invoices      *handler.InvoiceHandler
	Notifications *handler.NotificationHandler
	Files         *handler.FileHandler
	AuditLogs     *handler.AuditLogHandler
}

// New はミドルウェアとルートを組み立てたechoを返す
func New(cfg config.Config, logger *zap.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(requestLogger(logger))
	e.Validator = &requestValidator{v: validator.New()}

	RegisterRoutes(e, cfg, h)
	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
