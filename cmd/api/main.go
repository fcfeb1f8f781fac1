package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/mail"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type jwtIssuer struct {
	secret []byte
}

func (i *jwtIssuer) Issue(subject string, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

func main() {
	//.envは無ければ環境変数だけで動かす
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.SubProduct{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Complaint{},
		&model.InvoiceRecord{},
		&model.Notification{},
		&model.StoredFile{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	complaintRepo := infraRepo.NewComplaintGormRepository(gormDB)
	invoiceRepo := infraRepo.NewInvoiceGormRepository(gormDB)
	notificationRepo := infraRepo.NewNotificationGormRepository(gormDB)
	fileRepo := infraRepo.NewFileGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//請求書メール。キー未設定ならログに残すだけのNop
	var mailer mail.Mailer = mail.NopMailer{}
	if cfg.ResendAPIKey != "" {
		mailer = mail.NewResendMailer(cfg.ResendAPIKey, "invoices@electrochem.example")
	}

	//JWT issuer
	issuer := &jwtIssuer{secret: []byte(cfg.JWTSecret)}

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo, auditRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, mailer, logger)
	userUC := usecase.NewUserUsecase(userRepo, auditRepo, issuer)
	complaintUC := usecase.NewComplaintUsecase(complaintRepo, userRepo)
	invoiceUC := usecase.NewInvoiceUsecase(invoiceRepo)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)
	fileUC := usecase.NewFileUsecase(fileRepo)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)
	authUC := usecase.NewAdminAuthUsecase(cfg.AdminEmail, cfg.AdminPassword, issuer)

	//Handler生成
	handlers := server.Handlers{
		Auth:          handler.NewAuthHandler(authUC),
		Products:      handler.NewProductHandler(productUC),
		Orders:        handler.NewOrderHandler(orderUC),
		Users:         handler.NewUserHandler(userUC),
		Complaints:    handler.NewComplaintHandler(complaintUC),
		Invoices:      handler.NewInvoiceHandler(invoiceUC),
		Notifications: handler.NewNotificationHandler(notificationUC),
		Files:         handler.NewFileHandler(fileUC),
		AuditLogs:     handler.NewAuditLogHandler(auditUC),
	}

	//Server起動
	e := server.New(cfg, logger, handlers)
	if err := server.Start(e, ":"+cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
