package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/storefrontdev/storefront/internal/model"
	"github.com/storefrontdev/storefront/internal/storage"
)

// PasswordHasher hashes clear-text passwords before they are
// persisted. Implemented by auth.Hasher (bcrypt).
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Users persists login accounts. Usernames are unique; since the
// store cannot enforce that, Create scans the collection before
// inserting, and a repository-level mutex keeps the check-then-insert
// atomic under concurrent callers.
type Users struct {
	mu     sync.Mutex
	store  storage.Store
	seq    *Sequence
	hasher PasswordHasher
	now    func() time.Time
}

// NewUsers creates the user repository.
func NewUsers(store storage.Store, hasher PasswordHasher) *Users {
	return &Users{
		store:  store,
		seq:    NewSequence(store, storage.CollectionUsers),
		hasher: hasher,
		now:    time.Now,
	}
}

// List returns all users sorted by ascending id.
func (r *Users) List(ctx context.Context) ([]model.User, error) {
	if err := checkContext(ctx, "list users"); err != nil {
		return nil, err
	}

	users, err := r.scanAll()
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Get retrieves a user by id. Returns ErrNotFound if absent.
func (r *Users) Get(ctx context.Context, id int64) (*model.User, error) {
	if err := checkContext(ctx, "get user"); err != nil {
		return nil, err
	}

	raw, err := r.store.Get(storage.CollectionUsers, idKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decoding user %d: %w", id, err)
	}
	return &u, nil
}

// FindByUsername looks a user up by name via a full-collection scan.
// Returns ErrNotFound if absent.
func (r *Users) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if err := checkContext(ctx, "find user by username"); err != nil {
		return nil, err
	}
	return r.findByUsername(username)
}

// Create hashes the password and persists a new user. The username
// must not exist yet; the whole check-then-insert runs under the
// repository lock. Type defaults to "user" when empty.
func (r *Users) Create(ctx context.Context, username, password, userType string) (*model.User, error) {
	if err := checkContext(ctx, "create user"); err != nil {
		return nil, err
	}

	if userType == "" {
		userType = model.UserTypeUser
	}
	if !model.IsValidUserType(userType) {
		return nil, model.ErrUserType
	}

	hash, err := r.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.findByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	id, err := r.seq.Next()
	if err != nil {
		return nil, err
	}

	u := model.User{
		ID:        id,
		Username:  username,
		Password:  hash,
		Type:      userType,
		CreatedAt: r.now().UTC(),
	}
	if err := r.put(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateByUsername merges the provided fields over the stored user
// and writes the full record back. A provided password is re-hashed;
// id, username, and created_at are immutable. Returns ErrNotFound if
// the username is unknown.
func (r *Users) UpdateByUsername(ctx context.Context, username string, req *model.UpdateUserRequest) (*model.User, error) {
	if err := checkContext(ctx, "update user"); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, err := r.findByUsername(username)
	if err != nil {
		return nil, err
	}

	if req.Password != nil {
		hash, err := r.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		u.Password = hash
	}
	if req.Type != nil {
		u.Type = *req.Type
	}

	if err := r.put(u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteByUsername removes a user by name. Returns ErrNotFound if the
// username is unknown.
func (r *Users) DeleteByUsername(ctx context.Context, username string) error {
	if err := checkContext(ctx, "delete user"); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, err := r.findByUsername(username)
	if err != nil {
		return err
	}

	err = r.store.Delete(storage.CollectionUsers, idKey(u.ID))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *Users) findByUsername(username string) (*model.User, error) {
	var found *model.User
	err := r.store.Iterate(storage.CollectionUsers, func(key string, value []byte) error {
		if key == counterKey || found != nil {
			return nil
		}
		var u model.User
		if err := json.Unmarshal(value, &u); err != nil {
			return fmt.Errorf("decoding user %s: %w", key, err)
		}
		if u.Username == username {
			found = &u
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *Users) scanAll() ([]model.User, error) {
	users := []model.User{}
	err := r.store.Iterate(storage.CollectionUsers, func(key string, value []byte) error {
		if key == counterKey {
			return nil
		}
		var u model.User
		if err := json.Unmarshal(value, &u); err != nil {
			return fmt.Errorf("decoding user %s: %w", key, err)
		}
		users = append(users, u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *Users) put(u *model.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding user %d: %w", u.ID, err)
	}
	return r.store.Put(storage.CollectionUsers, idKey(u.ID), raw)
}
