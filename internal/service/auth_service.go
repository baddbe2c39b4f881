package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/observability"
	"github.com/noah-isme/jys-academy-api/internal/repository"
)

// Locations returned after login.
const (
	RedirectCourseSelection  = "/seleccionar-curso/"
	RedirectStudentDashboard = "/student-dashboard/"
	RedirectLogin            = "/login/"
)

// AuthService authenticates accounts and bootstraps administrators.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (dto.AccountResponse, error)
}

type authService struct {
	accounts  repository.AccountRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the authentication service.
func NewAuthService(accounts repository.AccountRepository, validator *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		accounts:  accounts,
		validator: validator,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

// Login never tells the caller which of username or password was wrong.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	account, err := s.accounts.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.LoginAttempts().WithLabelValues("rejected").Inc()
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if !account.CheckPassword(req.Password) {
		observability.LoginAttempts().WithLabelValues("rejected").Inc()
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if err := s.accounts.TouchLastLogin(ctx, account.ID, s.now().UTC()); err != nil {
		s.logger.Warn().Err(err).Uint("account_id", account.ID).Msg("failed to record last login")
	}

	observability.LoginAttempts().WithLabelValues("accepted").Inc()

	redirect := RedirectStudentDashboard
	if account.IsAdmin {
		redirect = RedirectCourseSelection
	}

	return dto.LoginResponse{
		Account:  dto.NewAccountResponse(account),
		Role:     account.Role(),
		Redirect: redirect,
	}, nil
}

func (s *authService) CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (dto.AccountResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return dto.AccountResponse{}, err
	}

	if _, err := s.accounts.GetByUsername(ctx, req.Username); err == nil {
		return dto.AccountResponse{}, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AccountResponse{}, err
	}

	account := models.Account{
		Username: req.Username,
		Email:    req.Email,
		IsAdmin:  true,
	}
	if err := account.SetPassword(req.Password); err != nil {
		return dto.AccountResponse{}, err
	}

	if err := s.accounts.Create(ctx, &account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.AccountResponse{}, ErrUsernameTaken
		}
		return dto.AccountResponse{}, err
	}

	s.logger.Info().Uint("account_id", account.ID).Str("username", account.Username).Msg("administrator created")
	return dto.NewAccountResponse(account), nil
}
