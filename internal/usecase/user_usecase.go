package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// JWTの発行をmainから注入する
type TokenIssuer interface {
	Issue(subject string, email string, ttl time.Duration) (string, error)
}

type UserUsecase struct {
	users     repo.UserRepository
	auditRepo repo.AuditLogRepository
	issuer    TokenIssuer
}

func NewUserUsecase(users repo.UserRepository, auditRepo repo.AuditLogRepository, issuer TokenIssuer) *UserUsecase {
	return &UserUsecase{users: users, auditRepo: auditRepo, issuer: issuer}
}

type AddressInput struct {
	Type    string `json:"type" validate:"required,oneof=billing shipping"`
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
	Phone   string `json:"phone"`
}

type KYCDocumentsInput struct {
	Aadhaar string `json:"aadhaar" validate:"required"`
	PAN     string `json:"pan" validate:"required"`
	GSTIN   string `json:"gstin"`
}

type RegisterUserInput struct {
	Name            string            `json:"name" validate:"required"`
	Email           string            `json:"email" validate:"required,email"`
	Password        string            `json:"password" validate:"required,min=6"`
	ConfirmPassword string            `json:"confirm_password" validate:"required,min=6"`
	UserType        string            `json:"user_type" validate:"omitempty,oneof=individual reseller oem"`
	Addresses       []AddressInput    `json:"addresses" validate:"dive"`
	Documents       KYCDocumentsInput `json:"documents" validate:"required"`
}

type RegisterUserOutput struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

func (u *UserUsecase) Register(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	if in.Password != in.ConfirmPassword {
		return RegisterUserOutput{}, NewHTTPError(http.StatusBadRequest, "passwords do not match")
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))

	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return RegisterUserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing != nil {
		return RegisterUserOutput{}, NewHTTPError(http.StatusBadRequest, "email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return RegisterUserOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	userType := model.UserType(in.UserType)
	if userType == "" {
		userType = model.UserTypeIndividual
	}

	addresses := make([]model.Address, 0, len(in.Addresses))
	for _, a := range in.Addresses {
		addresses = append(addresses, model.Address{
			Type:    a.Type,
			Street:  a.Street,
			City:    a.City,
			State:   a.State,
			ZipCode: a.ZipCode,
			Country: a.Country,
			Phone:   a.Phone,
		})
	}

	user := model.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		UserType:     userType,
		Addresses:    addresses,
		Documents: model.KYCDocuments{
			Aadhaar: in.Documents.Aadhaar,
			PAN:     in.Documents.PAN,
			GSTIN:   in.Documents.GSTIN,
		},
	}

	if err := u.users.Create(ctx, &user); err != nil {
		return RegisterUserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return RegisterUserOutput{
		UserID:  user.ID,
		Message: "user registered successfully",
	}, nil
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginUserOutput struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (u *UserUsecase) Login(ctx context.Context, in LoginUserInput) (LoginUserOutput, error) {
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(in.Email)))
	if err != nil {
		return LoginUserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return LoginUserOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginUserOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	token, err := u.issuer.Issue(fmt.Sprintf("%d", user.ID), user.Email, 7*24*time.Hour)
	if err != nil {
		return LoginUserOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return LoginUserOutput{Token: token, User: *user}, nil
}

// KYC未承認のreseller/oem一覧。
func (u *UserUsecase) ListForVerification(ctx context.Context) ([]model.User, error) {
	users, err := u.users.ListUnverified(ctx, []model.UserType{model.UserTypeReseller, model.UserTypeOEM})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return users, nil
}

func (u *UserUsecase) FindForVerificationByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "email parameter is required")
	}

	user, err := u.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return model.User{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	return *user, nil
}

func (u *UserUsecase) Verify(ctx context.Context, actorEmail string, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.users.SetVerified(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorEmail:   actorEmail,
		Action:       model.AuditActionVerifyUser,
		ResourceType: model.AuditResourceUser,
		ResourceID:   userID,
		BeforeJSON:   `{"is_verified":false}`,
		AfterJSON:    `{"is_verified":true}`,
		CreatedAt:    time.Now(),
	})

	return nil
}

type UserAnalyticsOutput struct {
	TotalUsers    int64 `json:"total_users"`
	NewUsers      int64 `json:"new_users"`
	PreviousUsers int64 `json:"previous_users"`
}

// 直近30日を境にした件数集計。
func (u *UserUsecase) Analytics(ctx context.Context) (UserAnalyticsOutput, error) {
	boundary := time.Now().AddDate(0, 0, -30)

	total, err := u.users.CountAll(ctx)
	if err != nil {
		return UserAnalyticsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	newUsers, err := u.users.CountCreatedSince(ctx, boundary)
	if err != nil {
		return UserAnalyticsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	previous, err := u.users.CountCreatedBefore(ctx, boundary)
	if err != nil {
		return UserAnalyticsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return UserAnalyticsOutput{
		TotalUsers:    total,
		NewUsers:      newUsers,
		PreviousUsers: previous,
	}, nil
}
