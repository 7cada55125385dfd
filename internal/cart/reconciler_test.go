package cart

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-be/internal/i18n"
	"storefront-be/internal/metrics"
	"storefront-be/internal/product"
)

// fakeCatalog is a map-backed ProductCatalog.
type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]*product.Product
	err      error
	lookups  int
}

func newFakeCatalog(products ...*product.Product) *fakeCatalog {
	c := &fakeCatalog{products: make(map[string]*product.Product)}
	for _, p := range products {
		c.products[p.Code] = p
	}
	return c
}

func (c *fakeCatalog) GetByCode(_ context.Context, code string) (*product.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookups++
	if c.err != nil {
		return nil, c.err
	}
	return c.products[code], nil
}

func (c *fakeCatalog) GetByIDs(_ context.Context, ids []int64) ([]*product.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	out := []*product.Product{}
	for _, id := range ids {
		for _, p := range c.products {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (c *fakeCatalog) delete(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, code)
}

func quantities(c *Cart) map[string]int {
	out := map[string]int{}
	for _, item := range c.Items() {
		out[item.Product().Code] = item.Quantity()
	}
	return out
}

func TestReconciler_Scenarios(t *testing.T) {
	ctx := context.Background()
	p := &product.Product{ID: 1, Code: "P", Quantity: 5}
	q := &product.Product{ID: 2, Code: "Q", Quantity: 5}
	r := NewReconciler(newFakeCatalog(p, q), nil)

	t.Run("Add within stock", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, r.Add(ctx, c, "P", 3))

		assert.Equal(t, map[string]int{"P": 3}, quantities(c))
		assert.Empty(t, c.Errors())

		t.Run("Add over stock clamps", func(t *testing.T) {
			require.NoError(t, r.Add(ctx, c, "P", 4))

			assert.Equal(t, map[string]int{"P": 5}, quantities(c))
			assert.Equal(t, []string{"Not enough stock for product P, quantity limited to 5."}, c.Errors())
		})
	})

	t.Run("Add zero prunes", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, r.Add(ctx, c, "P", 0))

		assert.Empty(t, c.Items())
		assert.Equal(t, []string{"Quantity of product P reached zero, item removed from cart."}, c.Errors())
	})

	t.Run("Remove absent product", func(t *testing.T) {
		c := NewCart()
		c.AddItem(p, 2)

		require.NoError(t, r.Remove(ctx, c, "Q"))

		assert.Equal(t, map[string]int{"P": 2}, quantities(c))
		assert.Empty(t, c.Errors())
	})

	t.Run("Add unknown product", func(t *testing.T) {
		c := NewCart()
		c.AddItem(p, 2)
		c.SetErrors([]string{"previous"})
		before := c.Snapshot()

		err := r.Add(ctx, c, "UNKNOWN", 1)

		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Equal(t, before, c.Snapshot())
		assert.Equal(t, []string{"previous"}, c.Errors())
	})
}

func TestReconciler_MergeInvariant(t *testing.T) {
	ctx := context.Background()
	p := &product.Product{ID: 1, Code: "P", Quantity: 100}
	r := NewReconciler(newFakeCatalog(p), nil)

	tests := []struct {
		q1, q2 int
		want   int
	}{
		{1, 1, 2},
		{10, 25, 35},
		{60, 60, 100},
		{5, -2, 3},
	}

	for _, tt := range tests {
		c := NewCart()
		require.NoError(t, r.Add(ctx, c, "P", tt.q1))
		require.NoError(t, r.Add(ctx, c, "P", tt.q2))

		require.Len(t, c.Items(), 1)
		assert.Equal(t, tt.want, c.Items()[0].Quantity())
	}
}

func TestReconciler_Clamp(t *testing.T) {
	ctx := context.Background()

	t.Run("Exactly one diagnostic with code and stock", func(t *testing.T) {
		r := NewReconciler(newFakeCatalog(&product.Product{ID: 1, Code: "SKU-9", Quantity: 3}), nil)
		c := NewCart()

		require.NoError(t, r.Add(ctx, c, "SKU-9", 50))

		require.Len(t, c.Items(), 1)
		assert.Equal(t, 3, c.Items()[0].Quantity())
		require.Len(t, c.Errors(), 1)
		assert.Contains(t, c.Errors()[0], "SKU-9")
		assert.Contains(t, c.Errors()[0], "3")
	})

	t.Run("Equal to stock is kept", func(t *testing.T) {
		r := NewReconciler(newFakeCatalog(&product.Product{ID: 1, Code: "P", Quantity: 3}), nil)
		c := NewCart()

		require.NoError(t, r.Add(ctx, c, "P", 3))

		assert.Equal(t, map[string]int{"P": 3}, quantities(c))
		assert.Empty(t, c.Errors())
	})

	t.Run("Zero stock clamps then prunes", func(t *testing.T) {
		r := NewReconciler(newFakeCatalog(&product.Product{ID: 1, Code: "P", Quantity: 0}), nil)
		c := NewCart()

		require.NoError(t, r.Add(ctx, c, "P", 2))

		assert.Empty(t, c.Items())
		assert.Equal(t, []string{
			"Not enough stock for product P, quantity limited to 0.",
			"Quantity of product P reached zero, item removed from cart.",
		}, c.Errors())
	})

	t.Run("Huge quantity saturates then clamps", func(t *testing.T) {
		r := NewReconciler(newFakeCatalog(&product.Product{ID: 1, Code: "P", Quantity: 5}), nil)
		c := NewCart()
		require.NoError(t, r.Add(ctx, c, "P", 3))

		require.NoError(t, r.Add(ctx, c, "P", math.MaxInt))

		assert.Equal(t, map[string]int{"P": 5}, quantities(c))
		assert.Equal(t, []string{"Not enough stock for product P, quantity limited to 5."}, c.Errors())
	})

	t.Run("Stock dropped since last add", func(t *testing.T) {
		p := &product.Product{ID: 1, Code: "P", Quantity: 10}
		catalog := newFakeCatalog(p)
		r := NewReconciler(catalog, nil)
		c := NewCart()
		require.NoError(t, r.Add(ctx, c, "P", 8))

		catalog.products["P"] = &product.Product{ID: 1, Code: "P", Quantity: 4}
		require.NoError(t, r.Add(ctx, c, "P", 1))

		assert.Equal(t, map[string]int{"P": 4}, quantities(c))
		assert.Len(t, c.Errors(), 1)
	})
}

func TestReconciler_ZeroPrune(t *testing.T) {
	ctx := context.Background()
	p := &product.Product{ID: 1, Code: "P", Quantity: 10}
	other := &product.Product{ID: 2, Code: "O", Quantity: 10}
	r := NewReconciler(newFakeCatalog(p, other), nil)

	t.Run("Negative delta below zero", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, r.Add(ctx, c, "O", 1))
		require.NoError(t, r.Add(ctx, c, "P", 2))

		require.NoError(t, r.Add(ctx, c, "P", -5))

		assert.Equal(t, map[string]int{"O": 1}, quantities(c))
		require.Len(t, c.Errors(), 1)
		assert.Contains(t, c.Errors()[0], "P")
	})

	t.Run("Negative delta to exactly zero", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, r.Add(ctx, c, "P", 2))

		require.NoError(t, r.Add(ctx, c, "P", -2))

		assert.Empty(t, c.Items())
		assert.Len(t, c.Errors(), 1)
	})

	t.Run("Negative on empty cart", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, r.Add(ctx, c, "P", -1))

		assert.Empty(t, c.Items())
		assert.Len(t, c.Errors(), 1)
	})
}

func TestReconciler_DiagnosticsDoNotAccumulate(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(newFakeCatalog(&product.Product{ID: 1, Code: "P", Quantity: 5}), nil)
	c := NewCart()

	require.NoError(t, r.Add(ctx, c, "P", 6))
	require.NoError(t, r.Add(ctx, c, "P", 6))
	assert.Len(t, c.Errors(), 1)

	require.NoError(t, r.Add(ctx, c, "P", -1))
	assert.Empty(t, c.Errors())
	assert.Equal(t, map[string]int{"P": 4}, quantities(c))
}

func TestReconciler_Remove(t *testing.T) {
	ctx := context.Background()
	p := &product.Product{ID: 1, Code: "P", Quantity: 5}
	q := &product.Product{ID: 2, Code: "Q", Quantity: 5}
	r := NewReconciler(newFakeCatalog(p, q), nil)

	t.Run("Removes line and clears diagnostics", func(t *testing.T) {
		c := NewCart()
		c.AddItem(p, 1)
		c.AddItem(q, 1)
		c.SetErrors([]string{"previous"})

		require.NoError(t, r.Remove(ctx, c, "P"))

		assert.Equal(t, map[string]int{"Q": 1}, quantities(c))
		assert.Empty(t, c.Errors())
	})

	t.Run("Idempotent", func(t *testing.T) {
		once := NewCart()
		once.AddItem(p, 1)
		once.AddItem(q, 3)
		require.NoError(t, r.Remove(ctx, once, "P"))

		twice := NewCart()
		twice.AddItem(p, 1)
		twice.AddItem(q, 3)
		require.NoError(t, r.Remove(ctx, twice, "P"))
		require.NoError(t, r.Remove(ctx, twice, "P"))

		assert.Equal(t, once.Snapshot(), twice.Snapshot())
		assert.Equal(t, once.Errors(), twice.Errors())
	})

	t.Run("Unknown product", func(t *testing.T) {
		c := NewCart()
		c.AddItem(p, 1)

		err := r.Remove(ctx, c, "UNKNOWN")

		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Equal(t, map[string]int{"P": 1}, quantities(c))
	})
}

func TestReconciler_CatalogError(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog()
	catalog.err = errors.New("db down")
	r := NewReconciler(catalog, nil)
	c := NewCart()

	err := r.Add(ctx, c, "P", 1)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, c.Items())
}

func TestReconciler_LocalizedDiagnostics(t *testing.T) {
	ctx := i18n.WithLocale(context.Background(), "fr")
	r := NewReconciler(newFakeCatalog(&product.Product{ID: 1, Code: "P", Quantity: 2}), nil)
	c := NewCart()

	require.NoError(t, r.Add(ctx, c, "P", 3))

	assert.Equal(t, []string{"Stock insuffisant pour le produit P, quantité limitée à 2."}, c.Errors())
}

func TestReconciler_Metrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	r := NewReconciler(newFakeCatalog(&product.Product{ID: 1, Code: "P", Quantity: 2}), m)
	c := NewCart()

	require.NoError(t, r.Add(ctx, c, "P", 3))
	require.NoError(t, r.Add(ctx, c, "P", -2))

	count, err := testutil.GatherAndCount(reg, "storefront_cart_adjustments_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
