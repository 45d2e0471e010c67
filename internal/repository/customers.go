package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/storefrontdev/storefront/internal/model"
	"github.com/storefrontdev/storefront/internal/storage"
)

// Customers persists registered customers.
type Customers struct {
	store storage.Store
	seq   *Sequence
}

// NewCustomers creates the customer repository.
func NewCustomers(store storage.Store) *Customers {
	return &Customers{
		store: store,
		seq:   NewSequence(store, storage.CollectionCustomers),
	}
}

// List returns all customers sorted by ascending id.
func (r *Customers) List(ctx context.Context) ([]model.Customer, error) {
	if err := checkContext(ctx, "list customers"); err != nil {
		return nil, err
	}

	customers := []model.Customer{}
	err := r.store.Iterate(storage.CollectionCustomers, func(key string, value []byte) error {
		if key == counterKey {
			return nil
		}
		var c model.Customer
		if err := json.Unmarshal(value, &c); err != nil {
			return fmt.Errorf("decoding customer %s: %w", key, err)
		}
		customers = append(customers, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers, nil
}

// Get retrieves a customer by id. Returns ErrNotFound if absent.
func (r *Customers) Get(ctx context.Context, id int64) (*model.Customer, error) {
	if err := checkContext(ctx, "get customer"); err != nil {
		return nil, err
	}

	raw, err := r.store.Get(storage.CollectionCustomers, idKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var c model.Customer
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decoding customer %d: %w", id, err)
	}
	return &c, nil
}

// Create allocates an id and persists a new customer.
func (r *Customers) Create(ctx context.Context, name, email string) (*model.Customer, error) {
	if err := checkContext(ctx, "create customer"); err != nil {
		return nil, err
	}

	id, err := r.seq.Next()
	if err != nil {
		return nil, err
	}

	c := model.Customer{ID: id, Name: name, Email: email}
	if err := r.put(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update merges the provided fields over the stored customer and
// writes the full record back. Returns ErrNotFound if absent.
func (r *Customers) Update(ctx context.Context, id int64, req *model.UpdateCustomerRequest) (*model.Customer, error) {
	c, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}

	if err := r.put(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a customer by id. Returns ErrNotFound if absent.
func (r *Customers) Delete(ctx context.Context, id int64) error {
	if err := checkContext(ctx, "delete customer"); err != nil {
		return err
	}

	err := r.store.Delete(storage.CollectionCustomers, idKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *Customers) put(c *model.Customer) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding customer %d: %w", c.ID, err)
	}
	return r.store.Put(storage.CollectionCustomers, idKey(c.ID), raw)
}
