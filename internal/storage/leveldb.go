package storage

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	ldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDBStore implements Store on top of a single LevelDB database.
// Collections are mapped to key prefixes ("<collection>/<key>"), which
// preserves key-byte iteration order within each collection.
type LevelDBStore struct {
	db *leveldb.DB
}

// OpenLevelDB opens (or creates) a LevelDB database at the given path.
func OpenLevelDB(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("opening leveldb at %s: %w", path, err)
	}
	return &LevelDBStore{db: db}, nil
}

// NewMemoryStore returns a LevelDB store backed by in-memory storage.
// Used by tests and as a zero-setup default.
func NewMemoryStore() *LevelDBStore {
	// Opening in-memory storage cannot fail.
	db, _ := leveldb.Open(ldbstorage.NewMemStorage(), nil)
	return &LevelDBStore{db: db}
}

// scopedKey builds the physical key for a collection entry.
func scopedKey(collection, key string) []byte {
	return []byte(collection + "/" + key)
}

// Get retrieves a value by key.
func (s *LevelDBStore) Get(collection, key string) ([]byte, error) {
	value, err := s.db.Get(scopedKey(collection, key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrKeyNotFound
	}
	if errors.Is(err, leveldb.ErrClosed) {
		return nil, ErrClosed
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, key, err)
	}
	return value, nil
}

// Put stores a value under the given key.
func (s *LevelDBStore) Put(collection, key string, value []byte) error {
	if err := s.db.Put(scopedKey(collection, key), value, nil); err != nil {
		if errors.Is(err, leveldb.ErrClosed) {
			return ErrClosed
		}
		return fmt.Errorf("put %s/%s: %w", collection, key, err)
	}
	return nil
}

// Delete removes a key-value pair. LevelDB deletes are blind, so the
// existence check happens first to honor the ErrKeyNotFound contract.
func (s *LevelDBStore) Delete(collection, key string) error {
	k := scopedKey(collection, key)

	if _, err := s.db.Get(k, nil); err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return ErrKeyNotFound
		}
		if errors.Is(err, leveldb.ErrClosed) {
			return ErrClosed
		}
		return fmt.Errorf("delete %s/%s: %w", collection, key, err)
	}

	if err := s.db.Delete(k, nil); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, key, err)
	}
	return nil
}

// Iterate visits every entry of the collection in key-byte order.
func (s *LevelDBStore) Iterate(collection string, fn IterFunc) error {
	prefix := []byte(collection + "/")
	iter := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	for iter.Next() {
		key := string(iter.Key()[len(prefix):])

		// The iterator reuses its buffers between Next calls.
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())

		if err := fn(key, value); err != nil {
			return err
		}
	}

	if err := iter.Error(); err != nil {
		return fmt.Errorf("iterate %s: %w", collection, err)
	}
	return nil
}

// Close releases the underlying database.
func (s *LevelDBStore) Close() error {
	if err := s.db.Close(); err != nil && !errors.Is(err, leveldb.ErrClosed) {
		return fmt.Errorf("closing leveldb: %w", err)
	}
	return nil
}
