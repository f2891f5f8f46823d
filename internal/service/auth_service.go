package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"mufessir/internal/dto"
	"mufessir/internal/entity"
	"mufessir/internal/pkg/mailer"
	"mufessir/internal/repository/specification"
	"mufessir/internal/repository/unitofwork"
	"mufessir/pkg/events"
	pktNats "mufessir/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetCode   = errors.New("invalid or expired code")
)

const tokenTTL = 7 * 24 * time.Hour

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.MeResponse, error)
	RequestPasswordReset(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ConfirmPasswordReset(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	jwtSecret      string
	initialQuota   int
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	jwtSecret string,
	initialQuota int,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		jwtSecret:      jwtSecret,
		initialQuota:   initialQuota,
	}
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}

func (s *authService) signToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.Id.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	var name *string
	if req.Name != "" {
		name = &req.Name
	}
	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         name,
		DailyQuota:   s.initialQuota,
		QuotaResetAt: time.Now().Add(24 * time.Hour),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return "", err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewUserRegistered(user.Id.String(), user.Email)); err != nil {
			// Event delivery is advisory, registration already succeeded.
			fmt.Printf("Warn: failed to publish user registered event: %v\n", err)
		}
	}

	return s.signToken(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.signToken(user)
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.MeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	resp := &dto.MeResponse{
		Id:           user.Id,
		Email:        user.Email,
		DailyQuota:   user.DailyQuota,
		QuotaResetAt: user.QuotaResetAt,
	}
	if user.Name != nil {
		resp.Name = *user.Name
	}
	return resp, nil
}

// RequestPasswordReset always succeeds from the caller's perspective so the
// endpoint cannot be used to probe which emails exist.
func (s *authService) RequestPasswordReset(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	reset := &entity.PasswordReset{
		Id:        uuid.New(),
		UserId:    user.Id,
		CodeHash:  string(codeHash),
		ExpiresAt: time.Now().Add(15 * time.Minute),
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().CreatePasswordReset(ctx, reset); err != nil {
		return err
	}

	go func() {
		if emailErr := s.emailService.SendResetCode(req.Email, code); emailErr != nil {
			fmt.Printf("Error sending password reset email: %v\n", emailErr)
		}
	}()

	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, req *dto.ResetPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidResetCode
	}

	// Only the newest unused code is ever valid; older rows are implicitly
	// superseded.
	reset, err := uow.UserRepository().FindPasswordReset(ctx,
		specification.ByUserID{UserID: user.Id},
		specification.UnusedResets{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return err
	}
	if reset == nil || reset.ExpiresAt.Before(time.Now()) {
		return ErrInvalidResetCode
	}

	if bcrypt.CompareHashAndPassword([]byte(reset.CodeHash), []byte(req.Code)) != nil {
		return ErrInvalidResetCode
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().UpdatePassword(ctx, user.Id, string(newHash)); err != nil {
		return err
	}
	if err := uow.UserRepository().MarkResetUsed(ctx, reset.Id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewPasswordResetConfirmed(user.Id.String())); err != nil {
			fmt.Printf("Warn: failed to publish password reset event: %v\n", err)
		}
	}
	return nil
}
