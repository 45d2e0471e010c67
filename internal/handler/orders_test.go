package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/storefrontdev/storefront/internal/model"
	"github.com/storefrontdev/storefront/internal/repository"
)

// newOrderRouter builds an order router backed by one shared store and
// seeds a single customer so referential checks can pass.
func newOrderRouter(t *testing.T) (*mux.Router, *repository.Orders) {
	t.Helper()
	store := newTestStore(t)
	orders := repository.NewOrders(store)
	customers := repository.NewCustomers(store)

	if _, err := customers.Create(context.Background(), "Alice", "alice@example.com"); err != nil {
		t.Fatalf("seeding customer: %v", err)
	}

	router := mux.NewRouter()
	NewOrderHandler(orders, customers, newTestHub(t), zap.NewNop()).RegisterRoutes(router)
	return router, orders
}

func TestOrderHandler_Create(t *testing.T) {
	// Arrange
	router, _ := newOrderRouter(t)

	// Act
	w := doRequest(t, router, http.MethodPost, "/api/order", model.CreateOrderRequest{
		Items:      []model.OrderItem{{ProductID: 1, Quantity: 2}},
		CustomerID: intPtr(1),
	})

	// Assert
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	var order model.Order
	decodeBody(t, w, &order)
	if order.ID != 1 || order.CustomerID != 1 {
		t.Errorf("created order = %+v, want id 1 customer 1", order)
	}
}

func TestOrderHandler_CreateUnknownCustomer(t *testing.T) {
	// Arrange
	router, orders := newOrderRouter(t)

	// Act
	w := doRequest(t, router, http.MethodPost, "/api/order", model.CreateOrderRequest{
		Items:      []model.OrderItem{{ProductID: 1, Quantity: 2}},
		CustomerID: intPtr(99),
	})

	// Assert: rejected before anything is persisted.
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var resp errorResponse
	decodeBody(t, w, &resp)
	if resp.Error != "Customer not found" {
		t.Errorf("error = %q, want %q", resp.Error, "Customer not found")
	}

	list, err := orders.List(context.Background())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("%d orders persisted after rejected create, want 0", len(list))
	}
}

func TestOrderHandler_CreateInvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body model.CreateOrderRequest
	}{
		{
			name: "no items",
			body: model.CreateOrderRequest{CustomerID: intPtr(1)},
		},
		{
			name: "zero quantity",
			body: model.CreateOrderRequest{
				Items:      []model.OrderItem{{ProductID: 1, Quantity: 0}},
				CustomerID: intPtr(1),
			},
		},
		{
			name: "missing customer id",
			body: model.CreateOrderRequest{Items: []model.OrderItem{{ProductID: 1, Quantity: 1}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			router, _ := newOrderRouter(t)

			// Act
			w := doRequest(t, router, http.MethodPost, "/api/order", tt.body)

			// Assert
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestOrderHandler_UpdateUnknownCustomer(t *testing.T) {
	// Arrange
	router, _ := newOrderRouter(t)
	created := doRequest(t, router, http.MethodPost, "/api/order", model.CreateOrderRequest{
		Items:      []model.OrderItem{{ProductID: 1, Quantity: 1}},
		CustomerID: intPtr(1),
	})
	if created.Code != http.StatusCreated {
		t.Fatalf("seed create status = %d", created.Code)
	}

	// Act: reassigning to a missing customer fails.
	w := doRequest(t, router, http.MethodPut, "/api/order/1",
		model.UpdateOrderRequest{CustomerID: intPtr(99)})

	// Assert
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	// Items-only update skips the customer check entirely.
	w = doRequest(t, router, http.MethodPut, "/api/order/1",
		model.UpdateOrderRequest{Items: []model.OrderItem{{ProductID: 2, Quantity: 5}}})
	if w.Code != http.StatusOK {
		t.Errorf("items-only update status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
}

func TestOrderHandler_Search(t *testing.T) {
	// Arrange: two orders for customer 1, one containing product 7.
	router, _ := newOrderRouter(t)
	doRequest(t, router, http.MethodPost, "/api/order", model.CreateOrderRequest{
		Items:      []model.OrderItem{{ProductID: 7, Quantity: 1}},
		CustomerID: intPtr(1),
	})
	doRequest(t, router, http.MethodPost, "/api/order", model.CreateOrderRequest{
		Items:      []model.OrderItem{{ProductID: 8, Quantity: 1}},
		CustomerID: intPtr(1),
	})

	tests := []struct {
		name      string
		query     string
		wantCount int
	}{
		{name: "by product", query: "?product_id=7", wantCount: 1},
		{name: "by customer", query: "?customer_id=1", wantCount: 2},
		{name: "product wins over customer", query: "?product_id=7&customer_id=1", wantCount: 1},
		{name: "no matches", query: "?product_id=99", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			w := doRequest(t, router, http.MethodGet, "/api/order/search"+tt.query, nil)

			// Assert
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
			}
			var found []model.Order
			decodeBody(t, w, &found)
			if len(found) != tt.wantCount {
				t.Errorf("search returned %d orders, want %d", len(found), tt.wantCount)
			}
		})
	}
}

func TestOrderHandler_SearchWithoutParams(t *testing.T) {
	// Arrange
	router, _ := newOrderRouter(t)

	// Act
	w := doRequest(t, router, http.MethodGet, "/api/order/search", nil)

	// Assert
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp errorResponse
	decodeBody(t, w, &resp)
	if resp.Error != "Must provide product_id or customer_id" {
		t.Errorf("error = %q, want %q", resp.Error, "Must provide product_id or customer_id")
	}
}

func TestOrderHandler_SearchBadParam(t *testing.T) {
	// Arrange
	router, _ := newOrderRouter(t)

	// Act
	w := doRequest(t, router, http.MethodGet, "/api/order/search?product_id=abc", nil)

	// Assert
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestOrderHandler_Delete(t *testing.T) {
	// Arrange
	router, _ := newOrderRouter(t)
	doRequest(t, router, http.MethodPost, "/api/order", model.CreateOrderRequest{
		Items:      []model.OrderItem{{ProductID: 1, Quantity: 1}},
		CustomerID: intPtr(1),
	})

	// Act
	w := doRequest(t, router, http.MethodDelete, "/api/order/1", nil)

	// Assert
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w := doRequest(t, router, http.MethodGet, "/api/order/1", nil); w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}
