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

// CustomerHandler handles /api/customer requests.
type CustomerHandler struct {
	base
	customers *repository.Customers
	events    *EventHub
}

// NewCustomerHandler creates a new CustomerHandler instance.
func NewCustomerHandler(customers *repository.Customers, events *EventHub, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		base:      base{logger: logger},
		customers: customers,
		events:    events,
	}
}

// RegisterRoutes registers the customer routes with the router.
func (h *CustomerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/customer", h.List).Methods(http.MethodGet)
	router.HandleFunc("/api/customer", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/customer/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/customer/{id}", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/api/customer/{id}", h.Delete).Methods(http.MethodDelete)
}

// List handles GET /api/customer.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		h.writeStorageError(w, "list customers", err)
		return
	}
	h.writeJSON(w, http.StatusOK, customers)
}

// Get handles GET /api/customer/{id}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.customers.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		h.writeStorageError(w, "get customer", err)
		return
	}

	h.writeJSON(w, http.StatusOK, customer)
}

// Create handles POST /api/customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.customers.Create(r.Context(), *req.Name, *req.Email)
	if err != nil {
		h.writeStorageError(w, "create customer", err)
		return
	}

	h.events.Publish("customer", ActionCreated, customer.ID)
	h.writeJSON(w, http.StatusCreated, customer)
}

// Update handles PUT /api/customer/{id}.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.customers.Update(r.Context(), id, &req)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		h.writeStorageError(w, "update customer", err)
		return
	}

	h.events.Publish("customer", ActionUpdated, customer.ID)
	h.writeJSON(w, http.StatusOK, customer)
}

// Delete handles DELETE /api/customer/{id}.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.customers.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		h.writeStorageError(w, "delete customer", err)
		return
	}

	h.events.Publish("customer", ActionDeleted, id)
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "Customer deleted successfully"})
}
