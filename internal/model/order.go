package model

// OrderItem is one line of an order: a product reference and how many
// units of it were ordered.
type OrderItem struct {
	ProductID int64 `json:"id"`
	Quantity  int64 `json:"quantity"`
}

// Order represents a customer order. An order always belongs to an
// existing customer; that reference is checked by the HTTP layer
// before the order is persisted.
type Order struct {
	ID         int64       `json:"id"`
	Items      []OrderItem `json:"items"`
	CustomerID int64       `json:"customer_id"`
}

// CreateOrderRequest is the payload for POST /api/order.
type CreateOrderRequest struct {
	Items      []OrderItem `json:"items"`
	CustomerID *int64      `json:"customer_id"`
}

// Validate checks the create payload. Items must be a non-empty list
// of positive product/quantity pairs and customer_id is required.
func (r *CreateOrderRequest) Validate() error {
	if err := validateItems(r.Items); err != nil {
		return err
	}
	if r.CustomerID == nil || *r.CustomerID <= 0 {
		return ErrOrderCustomer
	}
	return nil
}

// UpdateOrderRequest is the payload for PUT /api/order/{id}.
// Nil/absent fields keep their stored values. An order can never be
// updated to have no customer, so a provided customer_id must still be
// a positive integer.
type UpdateOrderRequest struct {
	Items      []OrderItem `json:"items"`
	CustomerID *int64      `json:"customer_id"`
}

// Validate checks the provided fields of the update payload.
func (r *UpdateOrderRequest) Validate() error {
	if r.Items != nil {
		if err := validateItems(r.Items); err != nil {
			return err
		}
	}
	if r.CustomerID != nil && *r.CustomerID <= 0 {
		return ErrOrderCustomer
	}
	return nil
}

func validateItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrOrderItems
	}
	for _, item := range items {
		if item.ProductID <= 0 || item.Quantity <= 0 {
			return ErrOrderItem
		}
	}
	return nil
}

// Contains reports whether the order references the given product.
func (o *Order) Contains(productID int64) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
