package repository

import (
	"sync"
	"testing"

	"github.com/storefrontdev/storefront/internal/storage"
)

func TestSequence_FirstAllocation(t *testing.T) {
	// Arrange
	store := storage.NewMemoryStore()
	defer func() { _ = store.Close() }()
	seq := NewSequence(store, storage.CollectionProducts)

	// Act
	id, err := seq.Next()

	// Assert
	if err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}
	if id != 1 {
		t.Errorf("Next() = %d, want 1", id)
	}
}

func TestSequence_StrictlyIncreasing(t *testing.T) {
	// Arrange
	store := storage.NewMemoryStore()
	defer func() { _ = store.Close() }()
	seq := NewSequence(store, storage.CollectionProducts)

	// Act & Assert
	for want := int64(1); want <= 100; want++ {
		id, err := seq.Next()
		if err != nil {
			t.Fatalf("Next() unexpected error: %v", err)
		}
		if id != want {
			t.Fatalf("Next() = %d, want %d", id, want)
		}
	}
}

func TestSequence_SurvivesReopen(t *testing.T) {
	// Arrange: the counter is persisted, so a new Sequence over the
	// same store must continue where the previous one stopped.
	store := storage.NewMemoryStore()
	defer func() { _ = store.Close() }()

	first := NewSequence(store, storage.CollectionOrders)
	for i := 0; i < 3; i++ {
		if _, err := first.Next(); err != nil {
			t.Fatalf("Next() unexpected error: %v", err)
		}
	}

	// Act
	second := NewSequence(store, storage.CollectionOrders)
	id, err := second.Next()

	// Assert
	if err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}
	if id != 4 {
		t.Errorf("Next() = %d, want 4", id)
	}
}

func TestSequence_CollectionsIndependent(t *testing.T) {
	// Arrange
	store := storage.NewMemoryStore()
	defer func() { _ = store.Close() }()

	products := NewSequence(store, storage.CollectionProducts)
	customers := NewSequence(store, storage.CollectionCustomers)

	if _, err := products.Next(); err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}
	if _, err := products.Next(); err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}

	// Act
	id, err := customers.Next()

	// Assert
	if err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}
	if id != 1 {
		t.Errorf("Next() = %d, want 1 (independent counter)", id)
	}
}

func TestSequence_ConcurrentAllocationsAreUnique(t *testing.T) {
	// Arrange
	store := storage.NewMemoryStore()
	defer func() { _ = store.Close() }()
	seq := NewSequence(store, storage.CollectionOrders)

	const n = 200
	ids := make(chan int64, n)
	var wg sync.WaitGroup

	// Act
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := seq.Next()
			if err != nil {
				t.Errorf("Next() unexpected error: %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	// Assert: exactly {1..n}, no duplicates, no gaps.
	seen := make(map[int64]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id allocated: %d", id)
		}
		seen[id] = true
	}
	for want := int64(1); want <= n; want++ {
		if !seen[want] {
			t.Errorf("id %d was never allocated", want)
		}
	}
}
