package product

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InventoryInStock    = "INSTOCK"
	InventoryLowStock   = "LOWSTOCK"
	InventoryOutOfStock = "OUTOFSTOCK"
)

// Product is a catalog entry. Quantity is the current stock.
type Product struct {
	ID                int64
	Code              string
	Name              string
	Description       string
	Image             string
	Category          string
	Price             decimal.Decimal
	Quantity          int
	InternalReference string
	ShellID           int
	InventoryStatus   string
	Rating            float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CreateInput struct {
	Code              string          `json:"code" validate:"required,max=255"`
	Name              string          `json:"name" validate:"required,max=255"`
	Description       string          `json:"description" validate:"max=1000"`
	Image             string          `json:"image" validate:"max=255"`
	Category          string          `json:"category" validate:"max=255"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int             `json:"quantity" validate:"gte=0"`
	InternalReference string          `json:"internalReference" validate:"required,max=255"`
	ShellID           int             `json:"shellId"`
	InventoryStatus   string          `json:"inventoryStatus" validate:"required,oneof=INSTOCK LOWSTOCK OUTOFSTOCK"`
	Rating            float64         `json:"rating" validate:"gte=0,lte=5"`
}

// UpdateInput is a partial update: nil fields keep their current value.
type UpdateInput struct {
	Code              *string          `json:"code" validate:"omitempty,min=1,max=255"`
	Name              *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description       *string          `json:"description" validate:"omitempty,max=1000"`
	Image             *string          `json:"image" validate:"omitempty,max=255"`
	Category          *string          `json:"category" validate:"omitempty,max=255"`
	Price             *decimal.Decimal `json:"price"`
	Quantity          *int             `json:"quantity" validate:"omitempty,gte=0"`
	InternalReference *string          `json:"internalReference" validate:"omitempty,min=1,max=255"`
	ShellID           *int             `json:"shellId"`
	InventoryStatus   *string          `json:"inventoryStatus" validate:"omitempty,oneof=INSTOCK LOWSTOCK OUTOFSTOCK"`
	Rating            *float64         `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

func (in CreateInput) toProduct() *Product {
	return &Product{
		Code:              in.Code,
		Name:              in.Name,
		Description:       in.Description,
		Image:             in.Image,
		Category:          in.Category,
		Price:             in.Price,
		Quantity:          in.Quantity,
		InternalReference: in.InternalReference,
		ShellID:           in.ShellID,
		InventoryStatus:   in.InventoryStatus,
		Rating:            in.Rating,
	}
}

// apply merges the non-nil fields of in into p.
func (p *Product) apply(in UpdateInput) {
	if in.Code != nil {
		p.Code = *in.Code
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.InternalReference != nil {
		p.InternalReference = *in.InternalReference
	}
	if in.ShellID != nil {
		p.ShellID = *in.ShellID
	}
	if in.InventoryStatus != nil {
		p.InventoryStatus = *in.InventoryStatus
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
}
