// Package service provides the auth, notes and comments stores.
// Each store applies pure transitions from package state and writes the
// resulting snapshot through a SnapshotRepository after every mutation.
package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/atinyakov/NoteShare/internal/metrics"
	"github.com/atinyakov/NoteShare/internal/models"
	"github.com/atinyakov/NoteShare/internal/state"
	"go.uber.org/zap"
)

// authSnapshot is the persisted form of state.AuthState; an absent token is stored as null.
type authSnapshot struct {
	Token           *string            `json:"token"`
	CurrentUser     *models.PublicUser `json:"currentUser"`
	IsLoggedIn      bool               `json:"isLoggedIn"`
	RegisteredUsers []models.User      `json:"registeredUsers"`
}

func toAuthSnapshot(s state.AuthState) authSnapshot {
	snap := authSnapshot{
		CurrentUser:     s.CurrentUser,
		IsLoggedIn:      s.IsLoggedIn,
		RegisteredUsers: s.RegisteredUsers,
	}
	if snap.RegisteredUsers == nil {
		snap.RegisteredUsers = []models.User{}
	}
	if s.Token != "" {
		token := s.Token
		snap.Token = &token
	}
	return snap
}

func (a authSnapshot) state() state.AuthState {
	s := state.AuthState{
		CurrentUser:     a.CurrentUser,
		IsLoggedIn:      a.IsLoggedIn,
		RegisteredUsers: a.RegisteredUsers,
	}
	if a.Token != nil {
		s.Token = *a.Token
	}
	return s.Normalize()
}

// AuthStore owns the registered users and the single active session.
type AuthStore struct {
	mu       sync.RWMutex
	state    state.AuthState
	repo     SnapshotRepository
	log      *zap.Logger
	newID    StringIDFunc
	newToken StringIDFunc
}

// AuthOption customizes an AuthStore.
type AuthOption func(*AuthStore)

// WithUserIDGenerator sets the generator for user ids.
func WithUserIDGenerator(f StringIDFunc) AuthOption {
	return func(s *AuthStore) { s.newID = f }
}

// WithTokenGenerator sets the generator for session tokens.
func WithTokenGenerator(f StringIDFunc) AuthOption {
	return func(s *AuthStore) { s.newToken = f }
}

// NewAuthStore rehydrates the auth state from repo, or starts with no users and no session.
func NewAuthStore(ctx context.Context, repo SnapshotRepository, log *zap.Logger, opts ...AuthOption) (*AuthStore, error) {
	s := &AuthStore{
		repo:     repo,
		log:      log,
		newID:    NewUUID,
		newToken: NewUUID,
	}
	for _, opt := range opts {
		opt(s)
	}

	var snap authSnapshot
	found, err := loadSnapshot(ctx, repo, AuthKey, &snap)
	if err != nil {
		return nil, err
	}
	if found {
		s.state = snap.state()
	}
	log.Info("auth store ready",
		zap.Bool("restored", found),
		zap.Int("users", len(s.state.RegisteredUsers)),
		zap.Bool("logged_in", s.state.IsLoggedIn),
	)
	return s, nil
}

// Register adds a user unless the email is already taken. It does not log the user in.
func (s *AuthStore) Register(ctx context.Context, name, email, password string) models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, res := s.state.Register(name, email, password, s.newID)
	s.record("register", res)
	if !res.Success {
		return res
	}
	s.state = next
	saveSnapshot(ctx, s.repo, s.log, AuthKey, toAuthSnapshot(s.state))
	return res
}

// Login opens a session with a fresh token when email and password match a registered user.
func (s *AuthStore) Login(ctx context.Context, email, password string) models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, res := s.state.Login(email, password, s.newToken)
	s.record("login", res)
	if !res.Success {
		return res
	}
	s.state = next
	saveSnapshot(ctx, s.repo, s.log, AuthKey, toAuthSnapshot(s.state))
	return res
}

// Logout clears the session. Calling it without a session is a no-op apart from the write.
func (s *AuthStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.Logout()
	saveSnapshot(ctx, s.repo, s.log, AuthKey, toAuthSnapshot(s.state))
}

// IsLoggedIn reports whether a session is active.
func (s *AuthStore) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsLoggedIn
}

// CurrentUser returns the logged-in user without the password.
func (s *AuthStore) CurrentUser() (models.PublicUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.CurrentUser == nil {
		return models.PublicUser{}, false
	}
	return *s.state.CurrentUser, true
}

// Token returns the active session token, or "" when logged out.
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Session returns the active token and user in one read.
// ok is false when nobody is logged in.
func (s *AuthStore) Session() (token string, user models.PublicUser, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.state.IsLoggedIn || s.state.CurrentUser == nil || s.state.Token == "" {
		return "", models.PublicUser{}, false
	}
	return s.state.Token, *s.state.CurrentUser, true
}

// UserCount returns the number of registered users.
func (s *AuthStore) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.RegisteredUsers)
}

func (s *AuthStore) record(op string, res models.Result) {
	metrics.StoreResults.WithLabelValues(op, strconv.FormatBool(res.Success)).Inc()
	if !res.Success {
		s.log.Debug("auth operation rejected", zap.String("operation", op), zap.String("reason", res.Message))
	}
}
