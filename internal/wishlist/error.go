package wishlist

import "errors"

var ErrProductNotFound = errors.New("product not found")
