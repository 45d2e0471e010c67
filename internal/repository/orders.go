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

// Orders persists customer orders. The repository trusts its input:
// the HTTP layer checks that the referenced customer exists before
// anything is written here.
type Orders struct {
	store storage.Store
	seq   *Sequence
}

// NewOrders creates the order repository.
func NewOrders(store storage.Store) *Orders {
	return &Orders{
		store: store,
		seq:   NewSequence(store, storage.CollectionOrders),
	}
}

// List returns all orders sorted by ascending id.
func (r *Orders) List(ctx context.Context) ([]model.Order, error) {
	if err := checkContext(ctx, "list orders"); err != nil {
		return nil, err
	}
	return r.scan(func(*model.Order) bool { return true })
}

// Get retrieves an order by id. Returns ErrNotFound if absent.
func (r *Orders) Get(ctx context.Context, id int64) (*model.Order, error) {
	if err := checkContext(ctx, "get order"); err != nil {
		return nil, err
	}

	raw, err := r.store.Get(storage.CollectionOrders, idKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var o model.Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("decoding order %d: %w", id, err)
	}
	return &o, nil
}

// Create allocates an id and persists a new order.
func (r *Orders) Create(ctx context.Context, items []model.OrderItem, customerID int64) (*model.Order, error) {
	if err := checkContext(ctx, "create order"); err != nil {
		return nil, err
	}

	id, err := r.seq.Next()
	if err != nil {
		return nil, err
	}

	o := model.Order{ID: id, Items: items, CustomerID: customerID}
	if err := r.put(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Update merges the provided fields over the stored order and writes
// the full record back. Returns ErrNotFound if absent.
func (r *Orders) Update(ctx context.Context, id int64, req *model.UpdateOrderRequest) (*model.Order, error) {
	o, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Items != nil {
		o.Items = req.Items
	}
	if req.CustomerID != nil {
		o.CustomerID = *req.CustomerID
	}

	if err := r.put(o); err != nil {
		return nil, err
	}
	return o, nil
}

// Delete removes an order by id. Returns ErrNotFound if absent.
func (r *Orders) Delete(ctx context.Context, id int64) error {
	if err := checkContext(ctx, "delete order"); err != nil {
		return err
	}

	err := r.store.Delete(storage.CollectionOrders, idKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}

// FindByCustomer returns all orders of the given customer, sorted by
// ascending id. The store has no secondary index, so this is a full
// scan with an in-memory predicate.
func (r *Orders) FindByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	if err := checkContext(ctx, "find orders by customer"); err != nil {
		return nil, err
	}
	return r.scan(func(o *model.Order) bool { return o.CustomerID == customerID })
}

// FindByProduct returns all orders containing the given product,
// sorted by ascending id. Full scan, same as FindByCustomer.
func (r *Orders) FindByProduct(ctx context.Context, productID int64) ([]model.Order, error) {
	if err := checkContext(ctx, "find orders by product"); err != nil {
		return nil, err
	}
	return r.scan(func(o *model.Order) bool { return o.Contains(productID) })
}

// scan iterates the whole collection, keeps orders matching the
// predicate, and sorts the result numerically by id.
func (r *Orders) scan(match func(*model.Order) bool) ([]model.Order, error) {
	orders := []model.Order{}
	err := r.store.Iterate(storage.CollectionOrders, func(key string, value []byte) error {
		if key == counterKey {
			return nil
		}
		var o model.Order
		if err := json.Unmarshal(value, &o); err != nil {
			return fmt.Errorf("decoding order %s: %w", key, err)
		}
		if match(&o) {
			orders = append(orders, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (r *Orders) put(o *model.Order) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encoding order %d: %w", o.ID, err)
	}
	return r.store.Put(storage.CollectionOrders, idKey(o.ID), raw)
}
