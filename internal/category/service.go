package category

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"storefront-be/internal/logger"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Service interface {
	List(ctx context.Context, input ListInput) (*Page, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// List pages through product categories. Limit defaults to 20 and is capped
// at 100; page defaults to 1.
func (s *service) List(ctx context.Context, input ListInput) (*Page, error) {
	limit := defaultLimit
	if input.Limit > 0 {
		limit = min(input.Limit, maxLimit)
	}
	page := 1
	if input.Page > 0 {
		page = input.Page
	}
	filter := strings.TrimSpace(input.Filter)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count categories", zap.Error(err))
		return nil, err
	}

	categories := []*Category{}
	if total > 0 {
		categories, err = s.repo.List(ctx, filter, limit, (page-1)*limit)
		if err != nil {
			log.Error("failed to list categories", zap.Error(err))
			return nil, err
		}
	}

	return &Page{Categories: categories, Total: total, Page: page, Limit: limit}, nil
}
