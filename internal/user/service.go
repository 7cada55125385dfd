package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"
)

type TokenIssuer interface {
	Generate(userID int64, email, role string) (string, error)
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (string, *User, error)
}

type service struct {
	repo     Repository
	tokens   TokenIssuer
	validate *validator.Validate
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{
		repo:     repo,
		tokens:   tokens,
		validate: validator.New(),
	}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	input.Email = strings.TrimSpace(input.Email)
	if err := s.validate.Struct(input); err != nil {
		log.Warn("invalid register input", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		log.Error("failed to look up email", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{
		Email:     input.Email,
		Password:  hashed,
		Username:  input.Username,
		Firstname: input.Firstname,
		Role:      utils.RoleUser,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info("register service completed",
		zap.Int64("user_id", u.ID),
		zap.String("email", u.Email),
	)
	return u, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	input.Email = strings.TrimSpace(input.Email)
	if err := s.validate.Struct(input); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	u, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		log.Error("failed to look up email", zap.Error(err))
		return "", nil, err
	}
	if u == nil || !auth.CheckPasswordHash(input.Password, u.Password) {
		log.Info("login rejected", zap.String("email", input.Email))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID, u.Email, u.Role)
	if err != nil {
		log.Error("failed to generate jwt", zap.Int64("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}
	return token, u, nil
}
