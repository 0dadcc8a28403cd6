// Package users is the User Store: the durable collection of registered
// accounts, kept as one serialized array under the "users" key.
//
// Email and username are each unique across all accounts (exact,
// case-sensitive match). The stored secret never leaves this package:
// every operation that returns an account returns models.User.
package users

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/collection"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
	"github.com/dmitrijs2005/notekeeper/internal/secret"
)

// Key is the substrate key of the users collection.
const Key = "users"

// Repository implements the User Store on top of a kv.Store.
type Repository struct {
	store  kv.Store
	hasher secret.Hasher
	now    func() time.Time
	newID  func() string

	// mu serializes read-modify-write cycles issued from this process.
	mu sync.Mutex
}

type Option func(*Repository)

func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

func WithHasher(h secret.Hasher) Option {
	return func(r *Repository) { r.hasher = h }
}

func NewRepository(store kv.Store, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		hasher: secret.Plain{},
		now:    time.Now,
		newID:  models.NewID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) load(ctx context.Context) (*collection.Collection[models.UserRecord], error) {
	c, err := collection.Load[models.UserRecord](ctx, r.store, Key)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return c, nil
}

func (r *Repository) save(ctx context.Context, c *collection.Collection[models.UserRecord]) error {
	if err := c.Save(ctx, r.store, Key); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// ListAll returns every account, secret included, in insertion order.
// A missing collection is empty.
func (r *Repository) ListAll(ctx context.Context) ([]models.UserRecord, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.All(), nil
}

// PersistAll overwrites the whole collection with records.
func (r *Repository) PersistAll(ctx context.Context, records []models.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, collection.New(records))
}

// Get returns the public part of the account with userID.
func (r *Repository) Get(ctx context.Context, userID string) (models.User, error) {
	c, err := r.load(ctx)
	if err != nil {
		return models.User{}, err
	}
	rec, ok := c.Get(userID)
	if !ok {
		return models.User{}, fmt.Errorf("get %s: %w", userID, common.ErrUserNotFound)
	}
	return rec.Public(), nil
}

// Register creates an account. Email uniqueness is checked before username
// uniqueness, so ErrDuplicateEmail wins when both collide.
func (r *Repository) Register(ctx context.Context, email, password, username string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.load(ctx)
	if err != nil {
		return models.User{}, err
	}

	if _, taken := c.Find(func(u models.UserRecord) bool { return u.Email == email }); taken {
		return models.User{}, common.ErrDuplicateEmail
	}
	if _, taken := c.Find(func(u models.UserRecord) bool { return u.Username == username }); taken {
		return models.User{}, common.ErrDuplicateUsername
	}

	sealed, err := r.hasher.Seal(password)
	if err != nil {
		return models.User{}, err
	}

	rec := models.UserRecord{
		User: models.User{
			ID:        r.newID(),
			Email:     email,
			Username:  username,
			CreatedAt: r.now().UTC(),
		},
		Password: sealed,
	}
	c.Append(rec)

	if err := r.save(ctx, c); err != nil {
		return models.User{}, err
	}
	return rec.Public(), nil
}

// Login looks for the account with exactly this email and password. No
// match is reported as ok == false, whichever of the two was wrong.
func (r *Repository) Login(ctx context.Context, email, password string) (models.User, bool, error) {
	c, err := r.load(ctx)
	if err != nil {
		return models.User{}, false, err
	}

	rec, ok := c.Find(func(u models.UserRecord) bool {
		return u.Email == email && r.hasher.Match(u.Password, password)
	})
	if !ok {
		return models.User{}, false, nil
	}
	return rec.Public(), true, nil
}

// UpdateUser replaces email and username of the account with userID. The
// password is replaced only when it is not blank. Keeping one's own email
// or username is not a collision, even when another record shares it.
func (r *Repository) UpdateUser(ctx context.Context, userID, email, password, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.load(ctx)
	if err != nil {
		return err
	}

	rec, ok := c.Get(userID)
	if !ok {
		return fmt.Errorf("update %s: %w", userID, common.ErrUserNotFound)
	}

	if email != rec.Email {
		if _, taken := c.Find(func(u models.UserRecord) bool { return u.Email == email }); taken {
			return common.ErrDuplicateEmail
		}
	}
	if username != rec.Username {
		if _, taken := c.Find(func(u models.UserRecord) bool { return u.Username == username }); taken {
			return common.ErrDuplicateUsername
		}
	}

	rec.Email = email
	rec.Username = username
	if strings.TrimSpace(password) != "" {
		sealed, err := r.hasher.Seal(password)
		if err != nil {
			return err
		}
		rec.Password = sealed
	}
	c.Replace(userID, rec)

	return r.save(ctx, c)
}
