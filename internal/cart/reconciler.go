package cart

import (
	"context"
	"fmt"

	"storefront-be/internal/i18n"
	"storefront-be/internal/metrics"
	"storefront-be/internal/product"
)

// ProductCatalog resolves live product data. GetByCode returns nil, nil for
// an unknown code.
type ProductCatalog interface {
	GetByCode(ctx context.Context, code string) (*product.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*product.Product, error)
}

// Reconciler applies add and remove requests to a cart against current
// stock.
type Reconciler struct {
	catalog ProductCatalog
	metrics *metrics.Metrics
}

func NewReconciler(catalog ProductCatalog, m *metrics.Metrics) *Reconciler {
	return &Reconciler{catalog: catalog, metrics: m}
}

func (r *Reconciler) resolve(ctx context.Context, code string) (*product.Product, error) {
	p, err := r.catalog.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("resolve product %q: %w", code, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, code)
	}
	return p, nil
}

// Add merges quantity into the line for code, clamps it to stock, then
// prunes it when it is not positive. The cart is untouched when the product
// cannot be resolved. Clamping and pruning are reported through the cart's
// diagnostics, not as errors.
func (r *Reconciler) Add(ctx context.Context, cart *Cart, code string, quantity int) error {
	p, err := r.resolve(ctx, code)
	if err != nil {
		return err
	}

	item := cart.AddItem(p, quantity)
	diagnostics := []string{}

	if item.Quantity() > p.Quantity {
		item.SetQuantity(p.Quantity)
		diagnostics = append(diagnostics, i18n.T(ctx, "cart.item.not_enough_stock", p.Code, p.Quantity))
		r.metrics.CartAdjusted(metrics.AdjustmentClamped)
	}

	if item.Quantity() <= 0 {
		cart.RemoveItem(p)
		diagnostics = append(diagnostics, i18n.T(ctx, "cart.item.quantity_zero", p.Code))
		r.metrics.CartAdjusted(metrics.AdjustmentPruned)
	}

	cart.SetErrors(diagnostics)
	return nil
}

// Remove drops the line for code. Removing a product that is not in the
// cart is a no-op.
func (r *Reconciler) Remove(ctx context.Context, cart *Cart, code string) error {
	p, err := r.resolve(ctx, code)
	if err != nil {
		return err
	}

	cart.RemoveItem(p)
	cart.SetErrors(nil)
	return nil
}
