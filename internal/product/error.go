package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCodeAlreadyUsed = errors.New("product code already used")
	ErrInvalidInput    = errors.New("invalid product input")
)
