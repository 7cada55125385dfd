package product

import "github.com/shopspring/decimal"

// Summary is the list representation of a product.
type Summary struct {
	ID                int64           `json:"id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int             `json:"quantity"`
	InternalReference string          `json:"internalReference"`
	ShellID           int             `json:"shellId"`
	InventoryStatus   string          `json:"inventoryStatus"`
	Rating            float64         `json:"rating"`
}

// Detail adds the long-form fields shown on a single product.
type Detail struct {
	Summary
	Description string `json:"description"`
	Image       string `json:"image"`
}

func ToSummary(p *Product) Summary {
	return Summary{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		Category:          p.Category,
		Price:             p.Price,
		Quantity:          p.Quantity,
		InternalReference: p.InternalReference,
		ShellID:           p.ShellID,
		InventoryStatus:   p.InventoryStatus,
		Rating:            p.Rating,
	}
}

func ToSummaries(products []*Product) []Summary {
	out := make([]Summary, 0, len(products))
	for _, p := range products {
		out = append(out, ToSummary(p))
	}
	return out
}

func ToDetail(p *Product) Detail {
	return Detail{
		Summary:     ToSummary(p),
		Description: p.Description,
		Image:       p.Image,
	}
}
