package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
)

// SessionKey is the substrate key of the persisted session slot.
const SessionKey = "currentUser"

// UserStore is the part of the User Store the auth flow depends on.
type UserStore interface {
	Register(ctx context.Context, email, password, username string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, bool, error)
	UpdateUser(ctx context.Context, userID, email, password, username string) error
	Get(ctx context.Context, userID string) (models.User, error)
}

// AuthService manages the active identity of the process.
//
// Contract:
//   - RestoreSession: called once at start; loads the persisted session if any.
//   - CurrentUser: the active identity, if one is set.
//   - Login / Register: on success persist the user as the session and make
//     it the active identity.
//   - Logout: clear the session; never fails from the caller's view.
//   - UpdateProfile: change the active user's email/username/password.
//   - Profile: the stored record of the active user.
type AuthService interface {
	RestoreSession(ctx context.Context) (models.User, bool)
	CurrentUser() (models.User, bool)
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, email, password, username string) (models.User, error)
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, email, password, username string) (models.User, error)
	Profile(ctx context.Context) (models.User, error)
}

// authService keeps the session slot as a denormalized copy of the user
// record. It is rewritten only on login, register, profile update and
// logout.
type authService struct {
	users   UserStore
	session kv.Store
	log     logging.Logger

	mu      sync.RWMutex
	current *models.User
}

// NewAuthService builds an AuthService with no active identity. Call
// RestoreSession before reading CurrentUser.
func NewAuthService(users UserStore, session kv.Store, log logging.Logger) AuthService {
	return &authService{users: users, session: session, log: log}
}

func (a *authService) setCurrent(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = u
}

func (a *authService) CurrentUser() (models.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil {
		return models.User{}, false
	}
	return *a.current, true
}

func (a *authService) writeSession(ctx context.Context, u models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := a.session.Set(ctx, SessionKey, string(b)); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// RestoreSession reads the session slot. An absent, unreadable or corrupt
// slot leaves the process logged out.
func (a *authService) RestoreSession(ctx context.Context) (models.User, bool) {
	raw, ok, err := a.session.Get(ctx, SessionKey)
	if err != nil {
		a.log.Error(ctx, "restore session failed", "error", err)
		a.setCurrent(nil)
		return models.User{}, false
	}
	if !ok {
		a.setCurrent(nil)
		return models.User{}, false
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
		a.log.Warn(ctx, "ignoring corrupt session", "error", err)
		a.setCurrent(nil)
		return models.User{}, false
	}

	a.setCurrent(&u)
	a.log.Debug(ctx, "session restored", "user_id", u.ID)
	return u, true
}

// Login reports every failure, storage faults included, as
// ErrInvalidCredentials. Nothing is written on failure.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	u, ok, err := a.users.Login(ctx, email, password)
	if err != nil {
		a.log.Error(ctx, "login failed", "email", email, "error", err)
		return models.User{}, common.ErrInvalidCredentials
	}
	if !ok {
		a.log.Info(ctx, "login rejected", "email", email)
		return models.User{}, common.ErrInvalidCredentials
	}

	if err := a.writeSession(ctx, u); err != nil {
		a.log.Error(ctx, "login failed", "email", email, "error", err)
		return models.User{}, common.ErrInvalidCredentials
	}

	a.setCurrent(&u)
	a.log.Info(ctx, "logged in", "user_id", u.ID)
	return u, nil
}

// Register creates the account and logs it in.
func (a *authService) Register(ctx context.Context, email, password, username string) (models.User, error) {
	u, err := a.users.Register(ctx, email, password, username)
	if err != nil {
		a.log.Info(ctx, "register failed", "email", email, "error", err)
		return models.User{}, fmt.Errorf("register: %w", err)
	}

	if err := a.writeSession(ctx, u); err != nil {
		a.log.Error(ctx, "register: session not saved", "user_id", u.ID, "error", err)
		return models.User{}, err
	}

	a.setCurrent(&u)
	a.log.Info(ctx, "registered", "user_id", u.ID)
	return u, nil
}

func (a *authService) Logout(ctx context.Context) {
	if err := a.session.Remove(ctx, SessionKey); err != nil {
		a.log.Error(ctx, "logout: session not cleared", "error", err)
	}
	a.setCurrent(nil)
}

// UpdateProfile updates the stored account of the active user and merges
// the new email and username onto the session. A blank password keeps the
// current one.
func (a *authService) UpdateProfile(ctx context.Context, email, password, username string) (models.User, error) {
	cur, ok := a.CurrentUser()
	if !ok {
		return models.User{}, common.ErrNotLoggedIn
	}

	if err := a.users.UpdateUser(ctx, cur.ID, email, password, username); err != nil {
		a.log.Info(ctx, "profile update failed", "user_id", cur.ID, "error", err)
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}

	cur.Email = email
	cur.Username = username
	if err := a.writeSession(ctx, cur); err != nil {
		a.log.Error(ctx, "profile update: session not saved", "user_id", cur.ID, "error", err)
		return models.User{}, err
	}

	a.setCurrent(&cur)
	a.log.Info(ctx, "profile updated", "user_id", cur.ID)
	return cur, nil
}

func (a *authService) Profile(ctx context.Context) (models.User, error) {
	cur, ok := a.CurrentUser()
	if !ok {
		return models.User{}, common.ErrNotLoggedIn
	}

	u, err := a.users.Get(ctx, cur.ID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			a.log.Error(ctx, "load profile failed", "user_id", cur.ID, "error", err)
		}
		return models.User{}, err
	}
	return u, nil
}
