package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bizdesk/internal/client/models"
	"github.com/dmitrijs2005/bizdesk/internal/logging"
)

// ProfileLoader fetches the current user's profile into the store.
type ProfileLoader interface {
	GetCurrentUser(ctx context.Context) error
}

// Session is a point-in-time copy of the store.
type Session struct {
	Token   string
	UserID  string
	Profile *models.UserProfile
}

var errMissingUserID = errors.New("persisted session has no user id")

// Store holds the signed-in user's credentials and profile. All methods are
// safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	token      string
	userID     string
	generation uint64
	onClear    []func()

	profile Loaded[models.UserProfile]

	persister Persister
	log       logging.Logger
	now       func() time.Time
}

func NewStore(p Persister, log logging.Logger) *Store {
	if p == nil {
		p = NewMemoryPersister()
	}
	return &Store{persister: p, log: log.With("component", "session"), now: time.Now}
}

// OnClear registers fn to run every time the session is torn down.
// Hooks run while the store is locked and must not call back into it.
func (s *Store) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}

// Token returns the bearer token and whether one is held.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Store) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

// Generation changes every time a session begins or ends. Work started
// under one generation must not be applied under another.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Session{Token: s.token, UserID: s.userID}
	if p, ok := s.profile.Peek(); ok {
		out.Profile = &p
	}
	return out
}

func (s *Store) Profile() (models.UserProfile, bool) {
	return s.profile.Peek()
}

// IfGeneration runs fn only if the session is still at generation gen and
// reports whether it ran. No Begin or Clear can happen while fn runs, so fn
// must not call back into the store.
func (s *Store) IfGeneration(gen uint64, fn func()) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.generation != gen {
		return false
	}
	fn()
	return true
}

// SetProfileAt is SetProfile for a profile fetched under generation gen. It
// leaves the store alone and returns false if the session changed since.
func (s *Store) SetProfileAt(gen uint64, p models.UserProfile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen || s.token == "" {
		return false
	}
	s.profile.Set(p)
	return true
}

// SetProfile replaces the cached profile wholesale.
func (s *Store) SetProfile(p models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return ErrNoSession
	}
	s.profile.Set(p)
	return nil
}

// LoadProfile returns the cached profile, fetching it once if needed.
func (s *Store) LoadProfile(ctx context.Context, fetch func(context.Context) (models.UserProfile, error)) (models.UserProfile, error) {
	return s.profile.Get(ctx, fetch)
}

// RefreshProfile fetches the profile even if one is cached.
func (s *Store) RefreshProfile(ctx context.Context, fetch func(context.Context) (models.UserProfile, error)) (models.UserProfile, error) {
	return s.profile.ForceRefresh(ctx, fetch)
}

// Begin adopts freshly issued credentials. They are persisted first; on a
// persistence error the in-memory session is left untouched.
func (s *Store) Begin(ctx context.Context, token, userID string) error {
	if token == "" || userID == "" {
		return fmt.Errorf("begin session: %w", ErrNoSession)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.Save(ctx, token, userID); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.token, s.userID = token, userID
	s.generation++
	s.profile.Invalidate()
	return nil
}

// Clear tears the session down. It is safe to call on an empty session.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked(ctx)
}

// ClearIf clears the session only if token is still the current one and
// reports whether it did.
func (s *Store) ClearIf(ctx context.Context, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || s.token != token {
		return false
	}
	s.clearLocked(ctx)
	return true
}

// Expire is ClearIf for a token the backend rejected. Any number of
// concurrent calls with the same token clear the session once.
func (s *Store) Expire(ctx context.Context, token string) bool {
	if !s.ClearIf(ctx, token) {
		return false
	}
	s.log.Warn(ctx, "session expired, signed out")
	return true
}

func (s *Store) clearLocked(ctx context.Context) {
	wasActive := s.token != ""
	s.token, s.userID = "", ""
	s.profile.Invalidate()
	if wasActive {
		s.generation++
	}

	if err := s.persister.Erase(ctx); err != nil {
		s.log.Error(ctx, "failed to erase persisted session", "err", err)
	}
	for _, fn := range s.onClear {
		fn()
	}
}

// Restore adopts credentials left by a previous run. A missing, malformed
// or expired token is erased and the session stays empty. When the token is
// adopted and no profile is cached, loader fetches it; if that fails the
// whole session is cleared again and the error returned.
//
// Restore may be called any number of times.
func (s *Store) Restore(ctx context.Context, loader ProfileLoader) error {
	token, userID, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("load persisted session: %w", err)
	}

	reason := checkPersisted(token, s.now())
	if reason == nil && userID == "" {
		reason = errMissingUserID
	}
	if reason != nil {
		if token != "" {
			s.log.Debug(ctx, "discarding persisted session", "reason", reason)
		}
		s.Clear(ctx)
		return nil
	}

	s.mu.Lock()
	if s.token != token || s.userID != userID {
		s.token, s.userID = token, userID
		s.generation++
		s.profile.Invalidate()
	}
	s.mu.Unlock()

	if _, ok := s.profile.Peek(); ok || loader == nil {
		return nil
	}
	if err := loader.GetCurrentUser(ctx); err != nil {
		s.Clear(ctx)
		return fmt.Errorf("restore profile: %w", err)
	}
	return nil
}
