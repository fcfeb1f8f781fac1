package db

import (
	"fmt"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"app/internal/config"
)

var (
	once    sync.Once
	handle  *gorm.DB
	initErr error
)

// Connect はDBに接続して *gorm.DB を返す。
// 何度呼んでも接続は1回だけ張る。
func Connect(cfg config.Config) (*gorm.DB, error) {
	once.Do(func() {
		handle, initErr = open(cfg)
	})
	return handle, initErr
}

func open(cfg config.Config) (*gorm.DB, error) {
	// DATABASE_URL があれば最優先で使う
	if cfg.DatabaseURL != "" {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser,
		cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
	)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}
