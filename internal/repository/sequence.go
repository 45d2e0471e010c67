package repository

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/storefrontdev/storefront/internal/storage"
)

// Sequence allocates strictly increasing integer identifiers for one
// collection. The next id lives under the collection's reserved
// counter key; ids are never reused, even after deletes.
//
// The read-increment-write cycle runs under a mutex so concurrent
// creates on the same collection can never observe the same value.
type Sequence struct {
	mu         sync.Mutex
	store      storage.Store
	collection string
}

// NewSequence creates an id allocator for the given collection.
func NewSequence(store storage.Store, collection string) *Sequence {
	return &Sequence{store: store, collection: collection}
}

// Next returns the next id for the collection and persists the
// advanced counter. The first allocation of a fresh collection
// returns 1.
func (s *Sequence) Next() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := int64(1)

	raw, err := s.store.Get(s.collection, counterKey)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
		// Fresh collection, counter starts at 1.
	case err != nil:
		return 0, fmt.Errorf("reading %s counter: %w", s.collection, err)
	default:
		id, err = strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("corrupt %s counter %q: %w", s.collection, raw, err)
		}
	}

	next := strconv.FormatInt(id+1, 10)
	if err := s.store.Put(s.collection, counterKey, []byte(next)); err != nil {
		return 0, fmt.Errorf("advancing %s counter: %w", s.collection, err)
	}

	return id, nil
}
