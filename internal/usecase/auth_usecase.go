package usecase

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// 管理者ログイン。環境変数の資格情報と突き合わせてJWTを返す。
type AdminAuthUsecase struct {
	adminEmail    string
	adminPassword string
	issuer        TokenIssuer
}

func NewAdminAuthUsecase(adminEmail string, adminPassword string, issuer TokenIssuer) *AdminAuthUsecase {
	return &AdminAuthUsecase{
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		issuer:        issuer,
	}
}

type AdminLoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginOutput struct {
	Token string `json:"token"`
}

func (u *AdminAuthUsecase) Login(ctx context.Context, in AdminLoginInput) (AdminLoginOutput, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return AdminLoginOutput{}, NewHTTPError(http.StatusBadRequest, "parameters required")
	}

	emailOK := subtle.ConstantTimeCompare([]byte(in.Email), []byte(u.adminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(in.Password), []byte(u.adminPassword)) == 1
	if !emailOK || !passOK {
		return AdminLoginOutput{}, NewHTTPError(http.StatusBadRequest, "invalid credentials")
	}

	token, err := u.issuer.Issue("admin", in.Email, 7*24*time.Hour)
	if err != nil {
		return AdminLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AdminLoginOutput{Token: token}, nil
}
