package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/storefrontdev/storefront/internal/model"
	"github.com/storefrontdev/storefront/internal/repository"
)

// OrderHandler handles /api/order requests. It enforces the
// referential rule the storage layer cannot: an order is only
// created or updated when the referenced customer exists.
type OrderHandler struct {
	base
	orders    *repository.Orders
	customers *repository.Customers
	events    *EventHub
}

// NewOrderHandler creates a new OrderHandler instance.
func NewOrderHandler(
	orders *repository.Orders,
	customers *repository.Customers,
	events *EventHub,
	logger *zap.Logger,
) *OrderHandler {
	return &OrderHandler{
		base:      base{logger: logger},
		orders:    orders,
		customers: customers,
		events:    events,
	}
}

// RegisterRoutes registers the order routes with the router.
// The search route must precede the {id} route so "search" is not
// captured as an id.
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/order", h.List).Methods(http.MethodGet)
	router.HandleFunc("/api/order", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/order/search", h.Search).Methods(http.MethodGet)
	router.HandleFunc("/api/order/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/order/{id}", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/api/order/{id}", h.Delete).Methods(http.MethodDelete)
}

// List handles GET /api/order.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.writeStorageError(w, "list orders", err)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/order/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orders.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		h.writeStorageError(w, "get order", err)
		return
	}

	h.writeJSON(w, http.StatusOK, order)
}

// Create handles POST /api/order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.customerExists(w, r, *req.CustomerID) {
		return
	}

	order, err := h.orders.Create(r.Context(), req.Items, *req.CustomerID)
	if err != nil {
		h.writeStorageError(w, "create order", err)
		return
	}

	h.events.Publish("order", ActionCreated, order.ID)
	h.writeJSON(w, http.StatusCreated, order)
}

// Update handles PUT /api/order/{id}.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// A reassigned order must still point at a real customer.
	if req.CustomerID != nil && !h.customerExists(w, r, *req.CustomerID) {
		return
	}

	order, err := h.orders.Update(r.Context(), id, &req)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		h.writeStorageError(w, "update order", err)
		return
	}

	h.events.Publish("order", ActionUpdated, order.ID)
	h.writeJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /api/order/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.orders.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		h.writeStorageError(w, "delete order", err)
		return
	}

	h.events.Publish("order", ActionDeleted, id)
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "Order deleted successfully"})
}

// Search handles GET /api/order/search?product_id=|customer_id=.
// product_id wins when both are provided.
func (h *OrderHandler) Search(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	customerID := r.URL.Query().Get("customer_id")

	switch {
	case productID != "":
		id, err := model.ParseID(productID)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "product_id must be a positive integer")
			return
		}
		orders, err := h.orders.FindByProduct(r.Context(), id)
		if err != nil {
			h.writeStorageError(w, "search orders by product", err)
			return
		}
		h.writeJSON(w, http.StatusOK, orders)

	case customerID != "":
		id, err := model.ParseID(customerID)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "customer_id must be a positive integer")
			return
		}
		orders, err := h.orders.FindByCustomer(r.Context(), id)
		if err != nil {
			h.writeStorageError(w, "search orders by customer", err)
			return
		}
		h.writeJSON(w, http.StatusOK, orders)

	default:
		h.writeError(w, http.StatusBadRequest, "Must provide product_id or customer_id")
	}
}

// customerExists verifies the referenced customer and writes the
// error response itself when the check fails.
func (h *OrderHandler) customerExists(w http.ResponseWriter, r *http.Request, customerID int64) bool {
	_, err := h.customers.Get(r.Context(), customerID)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Customer not found")
		return false
	}
	if err != nil {
		h.writeStorageError(w, "check customer", err)
		return false
	}
	return true
}
