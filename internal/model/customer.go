package model

// Customer represents a registered customer.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateCustomerRequest is the payload for POST /api/customer.
type CreateCustomerRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Validate checks the create payload. Both fields are required.
func (r *CreateCustomerRequest) Validate() error {
	if r.Name == nil || !IsValidString(*r.Name) {
		return ErrCustomerName
	}
	if r.Email == nil || !IsValidEmail(*r.Email) {
		return ErrCustomerEmail
	}
	return nil
}

// UpdateCustomerRequest is the payload for PUT /api/customer/{id}.
// Nil fields keep their stored values.
type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Validate checks the provided fields of the update payload.
func (r *UpdateCustomerRequest) Validate() error {
	if r.Name != nil && !IsValidString(*r.Name) {
		return ErrCustomerName
	}
	if r.Email != nil && !IsValidEmail(*r.Email) {
		return ErrCustomerEmail
	}
	return nil
}
