// Package services contains the application services of the bizdesk client:
// authentication, per-kind CRUD over the entity cache, the chart report and
// currency conversion. Core wires them around one session store.
package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/bizdesk/internal/client/client"
	"github.com/dmitrijs2005/bizdesk/internal/client/models"
	"github.com/dmitrijs2005/bizdesk/internal/client/session"
	"github.com/dmitrijs2005/bizdesk/internal/logging"
)

// AuthService defines the account operations of the client.
//
// Contract:
//   - Login, Register, UpdateProfile and DeleteAccount report success as a
//     bool; failures are logged with the server's message.
//   - Logout never touches the network and cannot fail.
//   - GetCurrentUser fetches the profile at most once per session;
//     RefreshCurrentUser always fetches.
//   - Restore adopts credentials persisted by an earlier run.
type AuthService interface {
	Login(ctx context.Context, email, password string) bool
	Register(ctx context.Context, req models.RegisterRequest) bool
	Logout(ctx context.Context)
	GetCurrentUser(ctx context.Context) error
	RefreshCurrentUser(ctx context.Context) error
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) bool
	DeleteAccount(ctx context.Context) bool
	Restore(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger
}

func NewAuthService(c client.Client, store *session.Store, log logging.Logger) AuthService {
	return &authService{client: c, store: store, log: log.With("component", "auth")}
}

func (a *authService) Login(ctx context.Context, email, password string) bool {
	var resp models.LoginResponse
	req := models.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := a.client.DoAnonymous(ctx, http.MethodPost, "/api/login", nil, req, &resp); err != nil {
		a.log.Warn(ctx, "login failed", "err", err)
		return false
	}

	if !session.WellFormed(resp.Token) || resp.UserID == "" {
		a.log.Error(ctx, "login response without usable credentials")
		return false
	}
	if err := a.store.Begin(ctx, resp.Token, string(resp.UserID)); err != nil {
		a.log.Error(ctx, "could not start session", "err", err)
		return false
	}
	a.log.Info(ctx, "signed in", "user_id", string(resp.UserID))
	return true
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) bool {
	if err := a.client.DoAnonymous(ctx, http.MethodPost, "/api/register", nil, req, nil); err != nil {
		a.log.Warn(ctx, "register failed", "err", err)
		return false
	}
	return true
}

func (a *authService) Logout(ctx context.Context) {
	a.store.Clear(ctx)
}

func (a *authService) fetchProfile(userID string) func(context.Context) (models.UserProfile, error) {
	return func(ctx context.Context) (models.UserProfile, error) {
		var p models.UserProfile
		err := a.client.Do(ctx, http.MethodGet, "/api/users/"+userID, nil, nil, &p)
		return p, err
	}
}

// GetCurrentUser loads the profile if none is cached. Without a session it
// logs and returns nil.
func (a *authService) GetCurrentUser(ctx context.Context) error {
	return a.loadProfile(ctx, false)
}

func (a *authService) RefreshCurrentUser(ctx context.Context) error {
	return a.loadProfile(ctx, true)
}

func (a *authService) loadProfile(ctx context.Context, force bool) error {
	snap := a.store.Snapshot()
	if snap.Token == "" || snap.UserID == "" {
		a.log.Warn(ctx, "no session to load the profile for")
		return nil
	}

	var err error
	if force {
		_, err = a.store.RefreshProfile(ctx, a.fetchProfile(snap.UserID))
	} else {
		_, err = a.store.LoadProfile(ctx, a.fetchProfile(snap.UserID))
	}
	if err != nil {
		a.log.Warn(ctx, "profile fetch failed", "err", err)
		return err
	}
	return nil
}

// UpdateProfile replaces the profile with the server's answer.
func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) bool {
	userID := a.store.UserID()
	if userID == "" {
		a.log.Warn(ctx, "profile update without session")
		return false
	}

	gen := a.store.Generation()
	var p models.UserProfile
	if err := a.client.Do(ctx, http.MethodPut, "/api/users/"+userID, nil, upd, &p); err != nil {
		a.log.Warn(ctx, "profile update failed", "err", err)
		return false
	}
	if !a.store.SetProfileAt(gen, p) {
		a.log.Warn(ctx, "profile update finished after session ended")
		return false
	}
	return true
}

// DeleteAccount removes the account and ends the session.
func (a *authService) DeleteAccount(ctx context.Context) bool {
	snap := a.store.Snapshot()
	if snap.Token == "" || snap.UserID == "" {
		a.log.Warn(ctx, "account deletion without session")
		return false
	}
	userID := snap.UserID

	if err := a.client.Do(ctx, http.MethodDelete, "/api/users/"+userID, nil, nil, nil); err != nil {
		a.log.Warn(ctx, "account deletion failed", "err", err)
		return false
	}
	a.store.ClearIf(ctx, snap.Token)
	a.log.Info(ctx, "account deleted", "user_id", userID)
	return true
}

func (a *authService) Restore(ctx context.Context) error {
	return a.store.Restore(ctx, a)
}
