package category

// Category is a product category with the number of products filed under
// it.
type Category struct {
	Name         string `json:"name"`
	ProductCount int64  `json:"productCount"`
}

type ListInput struct {
	Filter string
	Limit  int
	Page   int
}

type Page struct {
	Categories []*Category `json:"categories"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
}
