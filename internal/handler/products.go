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

// ProductHandler handles /api/product requests.
type ProductHandler struct {
	base
	products *repository.Products
	events   *EventHub
}

// NewProductHandler creates a new ProductHandler instance.
func NewProductHandler(products *repository.Products, events *EventHub, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		base:     base{logger: logger},
		products: products,
		events:   events,
	}
}

// RegisterRoutes registers the product routes with the router.
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/product", h.List).Methods(http.MethodGet)
	router.HandleFunc("/api/product", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/product/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/product/{id}", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/api/product/{id}", h.Delete).Methods(http.MethodDelete)
}

// List handles GET /api/product.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.writeStorageError(w, "list products", err)
		return
	}
	h.writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/product/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.writeStorageError(w, "get product", err)
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.Create(r.Context(), *req.Name, *req.Value)
	if err != nil {
		h.writeStorageError(w, "create product", err)
		return
	}

	h.events.Publish("product", ActionCreated, product.ID)
	h.writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/product/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.Update(r.Context(), id, &req)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.writeStorageError(w, "update product", err)
		return
	}

	h.events.Publish("product", ActionUpdated, product.ID)
	h.writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/product/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.products.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.writeStorageError(w, "delete product", err)
		return
	}

	h.events.Publish("product", ActionDeleted, id)
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}
