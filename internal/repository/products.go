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

// Products persists catalog products. Monetary values are normalized
// to two decimal places on every write and read.
type Products struct {
	store storage.Store
	seq   *Sequence
}

// NewProducts creates the product repository.
func NewProducts(store storage.Store) *Products {
	return &Products{
		store: store,
		seq:   NewSequence(store, storage.CollectionProducts),
	}
}

// List returns all products sorted by ascending id. The store
// iterates in key-byte order, so an explicit numeric sort is required
// ("10" sorts before "2" on bytes).
func (r *Products) List(ctx context.Context) ([]model.Product, error) {
	if err := checkContext(ctx, "list products"); err != nil {
		return nil, err
	}

	products := []model.Product{}
	err := r.store.Iterate(storage.CollectionProducts, func(key string, value []byte) error {
		if key == counterKey {
			return nil
		}
		var p model.Product
		if err := json.Unmarshal(value, &p); err != nil {
			return fmt.Errorf("decoding product %s: %w", key, err)
		}
		p.Value = model.RoundMoney(p.Value)
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// Get retrieves a product by id. Returns ErrNotFound if absent.
func (r *Products) Get(ctx context.Context, id int64) (*model.Product, error) {
	if err := checkContext(ctx, "get product"); err != nil {
		return nil, err
	}

	raw, err := r.store.Get(storage.CollectionProducts, idKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var p model.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decoding product %d: %w", id, err)
	}
	p.Value = model.RoundMoney(p.Value)
	return &p, nil
}

// Create allocates an id and persists a new product.
func (r *Products) Create(ctx context.Context, name string, value float64) (*model.Product, error) {
	if err := checkContext(ctx, "create product"); err != nil {
		return nil, err
	}

	id, err := r.seq.Next()
	if err != nil {
		return nil, err
	}

	p := model.Product{
		ID:    id,
		Name:  name,
		Value: model.RoundMoney(value),
	}
	if err := r.put(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update merges the provided fields over the stored product and
// writes the full record back. Returns ErrNotFound if absent.
func (r *Products) Update(ctx context.Context, id int64, req *model.UpdateProductRequest) (*model.Product, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Value != nil {
		p.Value = model.RoundMoney(*req.Value)
	}

	if err := r.put(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product by id. Returns ErrNotFound if absent.
func (r *Products) Delete(ctx context.Context, id int64) error {
	if err := checkContext(ctx, "delete product"); err != nil {
		return err
	}

	err := r.store.Delete(storage.CollectionProducts, idKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *Products) put(p *model.Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding product %d: %w", p.ID, err)
	}
	return r.store.Put(storage.CollectionProducts, idKey(p.ID), raw)
}
