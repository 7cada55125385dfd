package cart

import "storefront-be/internal/product"

type ItemResponse struct {
	Product  product.Summary `json:"product"`
	Quantity int             `json:"quantity"`
}

type Response struct {
	Items  []ItemResponse `json:"items"`
	Errors []string       `json:"errors"`
}

func ToResponse(c *Cart) Response {
	items := c.Items()
	out := Response{
		Items:  make([]ItemResponse, 0, len(items)),
		Errors: c.Errors(),
	}
	for _, item := range items {
		out.Items = append(out.Items, ItemResponse{
			Product:  product.ToSummary(item.Product()),
			Quantity: item.Quantity(),
		})
	}
	return out
}
