// Package model defines the entities persisted by the application and
// the request payloads accepted by the HTTP layer.
package model

import (
	"github.com/shopspring/decimal"
)

// Product represents a catalog product.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CreateProductRequest is the payload for POST /api/product.
type CreateProductRequest struct {
	Name  *string  `json:"name"`
	Value *float64 `json:"value"`
}

// Validate checks the create payload. Both fields are required.
func (r *CreateProductRequest) Validate() error {
	if r.Name == nil || !IsValidString(*r.Name) {
		return ErrProductName
	}
	if r.Value == nil || *r.Value < 0 {
		return ErrProductValue
	}
	return nil
}

// UpdateProductRequest is the payload for PUT /api/product/{id}.
// Nil fields keep their stored values.
type UpdateProductRequest struct {
	Name  *string  `json:"name"`
	Value *float64 `json:"value"`
}

// Validate checks the provided fields of the update payload.
func (r *UpdateProductRequest) Validate() error {
	if r.Name != nil && !IsValidString(*r.Name) {
		return ErrProductName
	}
	if r.Value != nil && *r.Value < 0 {
		return ErrProductValue
	}
	return nil
}

// RoundMoney normalizes a monetary amount to exactly two decimal
// places, rounding half away from zero (19.995 -> 20.00, 10.005 -> 10.01).
func RoundMoney(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}
