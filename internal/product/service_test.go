package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context) ([]*Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) GetByCode(ctx context.Context, code string) (*Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetByIDs(ctx context.Context, ids []int64) ([]*Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// --- Helpers ---

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *service {
	svc := NewService(repo).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func validCreateInput() CreateInput {
	return CreateInput{
		Code:              "P1",
		Name:              "Phone case",
		Price:             decimal.RequireFromString("12.50"),
		Quantity:          10,
		InternalReference: "REF-1",
		InventoryStatus:   InventoryInStock,
		Rating:            4,
	}
}

func strPtr(s string) *string { return &s }

// --- Tests ---

func TestService_GetByCode(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "P1").Return(&Product{ID: 1, Code: "P1"}, nil)

		p, err := NewService(repo).GetByCode(ctx, "P1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "NOPE").Return(nil, nil)

		_, err := NewService(repo).GetByCode(ctx, "NOPE")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "P1").Return(nil, errors.New("db down"))

		_, err := NewService(repo).GetByCode(ctx, "P1")
		assert.EqualError(t, err, "db down")
	})
}

func TestService_GetAll(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetAll", ctx).Return([]*Product{{ID: 1}, {ID: 2}}, nil)

	products, err := NewService(repo).GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "P1").Return(nil, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(p *Product) bool {
			return p.Code == "P1" && p.Quantity == 10 && p.CreatedAt.Equal(fixedNow) && p.UpdatedAt.Equal(fixedNow)
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*Product).ID = 9
		}).Return(nil)

		input := validCreateInput()
		input.Code = "  P1 "
		p, err := newTestService(repo).Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, int64(9), p.ID)
		repo.AssertExpectations(t)
	})

	t.Run("CodeAlreadyUsed", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "P1").Return(&Product{ID: 1, Code: "P1"}, nil)

		_, err := newTestService(repo).Create(ctx, validCreateInput())
		assert.ErrorIs(t, err, ErrCodeAlreadyUsed)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		cases := map[string]func(*CreateInput){
			"missing code":     func(in *CreateInput) { in.Code = "  " },
			"missing name":     func(in *CreateInput) { in.Name = "" },
			"negative stock":   func(in *CreateInput) { in.Quantity = -1 },
			"bad status":       func(in *CreateInput) { in.InventoryStatus = "GONE" },
			"rating too high":  func(in *CreateInput) { in.Rating = 6 },
			"negative price":   func(in *CreateInput) { in.Price = decimal.NewFromInt(-1) },
			"missing internal": func(in *CreateInput) { in.InternalReference = "" },
		}

		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				repo := new(MockRepository)
				input := validCreateInput()
				mutate(&input)

				_, err := newTestService(repo).Create(ctx, input)
				assert.ErrorIs(t, err, ErrInvalidInput)
				repo.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "P1").Return(nil, nil)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

		_, err := newTestService(repo).Create(ctx, validCreateInput())
		assert.EqualError(t, err, "insert failed")
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	existing := func() *Product {
		return &Product{ID: 1, Code: "P1", Name: "Old", Quantity: 2, InventoryStatus: InventoryLowStock}
	}

	t.Run("PartialMerge", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "P1").Return(existing(), nil)
		repo.On("Update", ctx, mock.Anything).Return(nil)

		qty := 20
		p, err := newTestService(repo).Update(ctx, "P1", UpdateInput{Name: strPtr("New"), Quantity: &qty})
		require.NoError(t, err)
		assert.Equal(t, "New", p.Name)
		assert.Equal(t, 20, p.Quantity)
		assert.Equal(t, "P1", p.Code)
		assert.Equal(t, InventoryLowStock, p.InventoryStatus)
		assert.True(t, p.UpdatedAt.Equal(fixedNow))
	})

	t.Run("RenameToFreeCode", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "P1").Return(existing(), nil)
		repo.On("GetByCode", ctx, "P9").Return(nil, nil)
		repo.On("Update", ctx, mock.Anything).Return(nil)

		p, err := newTestService(repo).Update(ctx, "P1", UpdateInput{Code: strPtr("P9")})
		require.NoError(t, err)
		assert.Equal(t, "P9", p.Code)
	})

	t.Run("SameCodeIsNotACollision", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "P1").Return(existing(), nil).Once()
		repo.On("Update", ctx, mock.Anything).Return(nil)

		_, err := newTestService(repo).Update(ctx, "P1", UpdateInput{Code: strPtr("P1")})
		assert.NoError(t, err)
		repo.AssertNumberOfCalls(t, "GetByCode", 1)
	})

	t.Run("CodeCollision", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "P1").Return(existing(), nil)
		repo.On("GetByCode", ctx, "P2").Return(&Product{ID: 2, Code: "P2"}, nil)

		_, err := newTestService(repo).Update(ctx, "P1", UpdateInput{Code: strPtr("P2")})
		assert.ErrorIs(t, err, ErrCodeAlreadyUsed)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "NOPE").Return(nil, nil)

		_, err := newTestService(repo).Update(ctx, "NOPE", UpdateInput{Name: strPtr("x")})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		repo := new(MockRepository)
		qty := -3

		_, err := newTestService(repo).Update(ctx, "P1", UpdateInput{Quantity: &qty})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "P1").Return(&Product{ID: 4, Code: "P1"}, nil)
		repo.On("Delete", ctx, int64(4)).Return(nil)

		p, err := NewService(repo).Delete(ctx, "P1")
		require.NoError(t, err)
		assert.Equal(t, "P1", p.Code)
		repo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByCode", ctx, "NOPE").Return(nil, nil)

		_, err := NewService(repo).Delete(ctx, "NOPE")
		assert.ErrorIs(t, err, ErrProductNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
