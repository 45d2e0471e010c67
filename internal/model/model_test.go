package model

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int64) *int64 { return &i }

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{name: "already two decimals", value: 19.99, want: 19.99},
		{name: "half away from zero", value: 19.995, want: 20.00},
		{name: "half at hundredth", value: 10.005, want: 10.01},
		{name: "long fraction", value: 3.14159, want: 3.14},
		{name: "integer", value: 5, want: 5},
		{name: "zero", value: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundMoney(tt.value); got != tt.want {
				t.Errorf("RoundMoney(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestCreateProductRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateProductRequest
		wantErr error
	}{
		{name: "valid", req: CreateProductRequest{Name: strPtr("Widget"), Value: floatPtr(9.99)}},
		{name: "zero value allowed", req: CreateProductRequest{Name: strPtr("Widget"), Value: floatPtr(0)}},
		{name: "missing name", req: CreateProductRequest{Value: floatPtr(9.99)}, wantErr: ErrProductName},
		{name: "blank name", req: CreateProductRequest{Name: strPtr("  "), Value: floatPtr(9.99)}, wantErr: ErrProductName},
		{name: "missing value", req: CreateProductRequest{Name: strPtr("Widget")}, wantErr: ErrProductValue},
		{name: "negative value", req: CreateProductRequest{Name: strPtr("Widget"), Value: floatPtr(-1)}, wantErr: ErrProductValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateProductRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateProductRequest
		wantErr error
	}{
		{name: "empty payload is fine", req: UpdateProductRequest{}},
		{name: "name only", req: UpdateProductRequest{Name: strPtr("Gadget")}},
		{name: "blank name", req: UpdateProductRequest{Name: strPtr("")}, wantErr: ErrProductName},
		{name: "negative value", req: UpdateProductRequest{Value: floatPtr(-0.5)}, wantErr: ErrProductValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateCustomerRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateCustomerRequest
		wantErr error
	}{
		{name: "valid", req: CreateCustomerRequest{Name: strPtr("Alice"), Email: strPtr("alice@example.com")}},
		{name: "missing name", req: CreateCustomerRequest{Email: strPtr("alice@example.com")}, wantErr: ErrCustomerName},
		{name: "missing email", req: CreateCustomerRequest{Name: strPtr("Alice")}, wantErr: ErrCustomerEmail},
		{name: "bad email", req: CreateCustomerRequest{Name: strPtr("Alice"), Email: strPtr("not-an-email")}, wantErr: ErrCustomerEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateOrderRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateOrderRequest
		wantErr error
	}{
		{
			name: "valid",
			req: CreateOrderRequest{
				Items:      []OrderItem{{ProductID: 1, Quantity: 2}},
				CustomerID: intPtr(1),
			},
		},
		{
			name:    "no items",
			req:     CreateOrderRequest{CustomerID: intPtr(1)},
			wantErr: ErrOrderItems,
		},
		{
			name: "empty items",
			req: CreateOrderRequest{
				Items:      []OrderItem{},
				CustomerID: intPtr(1),
			},
			wantErr: ErrOrderItems,
		},
		{
			name: "zero quantity",
			req: CreateOrderRequest{
				Items:      []OrderItem{{ProductID: 1, Quantity: 0}},
				CustomerID: intPtr(1),
			},
			wantErr: ErrOrderItem,
		},
		{
			name: "non-positive product id",
			req: CreateOrderRequest{
				Items:      []OrderItem{{ProductID: 0, Quantity: 1}},
				CustomerID: intPtr(1),
			},
			wantErr: ErrOrderItem,
		},
		{
			name:    "missing customer",
			req:     CreateOrderRequest{Items: []OrderItem{{ProductID: 1, Quantity: 1}}},
			wantErr: ErrOrderCustomer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateOrderRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateOrderRequest
		wantErr error
	}{
		{name: "empty payload is fine", req: UpdateOrderRequest{}},
		{name: "items only", req: UpdateOrderRequest{Items: []OrderItem{{ProductID: 1, Quantity: 1}}}},
		{name: "customer only", req: UpdateOrderRequest{CustomerID: intPtr(3)}},
		{name: "empty items rejected", req: UpdateOrderRequest{Items: []OrderItem{}}, wantErr: ErrOrderItems},
		{name: "bad customer", req: UpdateOrderRequest{CustomerID: intPtr(0)}, wantErr: ErrOrderCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOrder_Contains(t *testing.T) {
	order := Order{Items: []OrderItem{{ProductID: 1, Quantity: 1}, {ProductID: 3, Quantity: 2}}}

	if !order.Contains(3) {
		t.Error("Contains(3) should be true")
	}
	if order.Contains(2) {
		t.Error("Contains(2) should be false")
	}
}

func TestUser_PublicOmitsPassword(t *testing.T) {
	user := User{ID: 1, Username: "bob", Password: "$2a$10$hash", Type: UserTypeUser}

	public := user.Public()

	if public.ID != 1 || public.Username != "bob" || public.Type != UserTypeUser {
		t.Errorf("Public() = %+v, want identity fields copied", public)
	}
}

func TestUpdateUserRequest_Validate(t *testing.T) {
	admin := UserTypeAdmin
	password := "secret"
	empty := ""
	bad := "root"

	tests := []struct {
		name    string
		req     UpdateUserRequest
		wantErr error
	}{
		{name: "password only", req: UpdateUserRequest{Password: &password}},
		{name: "type only", req: UpdateUserRequest{Type: &admin}},
		{name: "no fields", req: UpdateUserRequest{}, wantErr: ErrNoFields},
		{name: "empty password", req: UpdateUserRequest{Password: &empty}, wantErr: ErrPassword},
		{name: "unknown type", req: UpdateUserRequest{Type: &bad}, wantErr: ErrUserType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr error
	}{
		{name: "valid", req: LoginRequest{Username: "bob", Password: "secret"}},
		{name: "missing username", req: LoginRequest{Password: "secret"}, wantErr: ErrUsername},
		{name: "missing password", req: LoginRequest{Username: "bob"}, wantErr: ErrPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
