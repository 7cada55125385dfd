package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"storefront-be/internal/logger"
)

type Service interface {
	GetAll(ctx context.Context) ([]*Product, error)
	GetByCode(ctx context.Context, code string) (*Product, error)
	Create(ctx context.Context, input CreateInput) (*Product, error)
	Update(ctx context.Context, code string, input UpdateInput) (*Product, error)
	Delete(ctx context.Context, code string) (*Product, error)
}

type service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *service) GetAll(ctx context.Context) ([]*Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByCode(ctx context.Context, code string) (*Product, error) {
	p, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	input.Code = strings.TrimSpace(input.Code)
	if err := s.validate.Struct(input); err != nil {
		log.Warn("invalid product input", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.Price.IsNegative() {
		return nil, fmt.Errorf("%w: negative price", ErrInvalidInput)
	}

	colliding, err := s.repo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if colliding != nil {
		log.Info("product code already used", zap.String("code", input.Code))
		return nil, ErrCodeAlreadyUsed
	}

	p := input.toProduct()
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info("product created", zap.Int64("id", p.ID), zap.String("code", p.Code))
	return p, nil
}

func (s *service) Update(ctx context.Context, code string, input UpdateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("code", code),
	)

	if err := s.validate.Struct(input); err != nil {
		log.Warn("invalid product input", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, fmt.Errorf("%w: negative price", ErrInvalidInput)
	}

	p, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if input.Code != nil && *input.Code != p.Code {
		colliding, err := s.repo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if colliding != nil && colliding.ID != p.ID {
			log.Info("product code already used", zap.String("new_code", *input.Code))
			return nil, ErrCodeAlreadyUsed
		}
	}

	p.apply(input)
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, code string) (*Product, error) {
	p, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product deleted", zap.Int64("id", p.ID), zap.String("code", code))
	return p, nil
}
