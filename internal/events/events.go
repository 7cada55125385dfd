package events

import (
	"context"
	"time"
)

const (
	CartItemAdded   = "cart.item_added"
	CartItemRemoved = "cart.item_removed"
	CartCleared     = "cart.cleared"
)

// Event describes one completed cart mutation.
type Event struct {
	Type        string    `json:"type"`
	Key         string    `json:"key"`
	ProductCode string    `json:"productCode,omitempty"`
	Quantity    int       `json:"quantity,omitempty"`
	Diagnostics []string  `json:"diagnostics,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

func (Noop) Close() error { return nil }
