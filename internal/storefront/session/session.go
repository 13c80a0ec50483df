// Package session keeps the storefront's login state in durable storage
// and derives what the login affordance should show and do.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/storefront/storage"
)

const LogoutPrompt = "Deseja sair da sua conta?"

// Action is what activating the login affordance does.
type Action int

const (
	ActionNavigateLogin Action = iota
	ActionLogout
)

// Outcome is the result of Guard.Activate.
type Outcome int

const (
	OutcomeNavigateLogin Outcome = iota
	OutcomeLoggedOut
	OutcomeCancelled
)

// Session is what register and login hand back.
type Session struct {
	Token string
	User  domain.Profile
}

// ViewModel describes the login affordance.
type ViewModel struct {
	IsAuthenticated bool
	DisplayName     string
	Action          Action
}

var anonymous = ViewModel{Action: ActionNavigateLogin}

// Verifier asks the server who a token belongs to.
type Verifier interface {
	Me(ctx context.Context, token string) (domain.Profile, error)
}

// Reloader resets all in-memory UI state after logout.
type Reloader interface {
	Reload()
}

// ReloaderFunc adapts a function to Reloader.
type ReloaderFunc func()

func (f ReloaderFunc) Reload() { f() }

// Guard is not safe for concurrent use.
type Guard struct {
	storage  storage.Store
	verifier Verifier
	reloader Reloader
	log      zerolog.Logger
}

func NewGuard(st storage.Store, verifier Verifier, reloader Reloader, log zerolog.Logger) *Guard {
	return &Guard{storage: st, verifier: verifier, reloader: reloader, log: log}
}

// CheckAuth derives the view model from storage alone. Token and user must
// both be present and readable; anything else is anonymous.
func (g *Guard) CheckAuth() ViewModel {
	s, ok := g.load()
	if !ok {
		return anonymous
	}
	return ViewModel{
		IsAuthenticated: true,
		DisplayName:     DisplayName(s.User.Name),
		Action:          ActionLogout,
	}
}

// Verify checks the stored token with the server. A rejected token clears
// the stored session. Transport failures leave storage alone and return
// the local view model with the error.
func (g *Guard) Verify(ctx context.Context) (ViewModel, error) {
	s, ok := g.load()
	if !ok {
		return anonymous, nil
	}

	if _, err := g.verifier.Me(ctx, s.Token); err != nil {
		if rejected(err) {
			g.log.Info().Err(err).Msg("stored session rejected by server, clearing")
			if cerr := g.clear(); cerr != nil {
				return anonymous, cerr
			}
			return anonymous, nil
		}
		return g.CheckAuth(), err
	}
	return g.CheckAuth(), nil
}

// Store persists a session returned by register or login. Either both
// keys are written or neither is.
func (g *Guard) Store(s Session) error {
	user, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	if err := g.storage.Set(storage.KeyToken, s.Token); err != nil {
		return fmt.Errorf("session: store token: %w", err)
	}
	if err := g.storage.Set(storage.KeyUser, string(user)); err != nil {
		if derr := g.storage.Delete(storage.KeyToken); derr != nil {
			g.log.Error().Err(derr).Msg("failed to roll back stored token")
		}
		return fmt.Errorf("session: store user: %w", err)
	}
	return nil
}

// Current returns the stored session, if complete.
func (g *Guard) Current() (Session, bool) {
	return g.load()
}

// Activate runs the login affordance. Authenticated users are asked to
// confirm before being logged out.
func (g *Guard) Activate(confirm func(prompt string) bool) (Outcome, error) {
	if !g.CheckAuth().IsAuthenticated {
		return OutcomeNavigateLogin, nil
	}
	if !confirm(LogoutPrompt) {
		return OutcomeCancelled, nil
	}
	if err := g.Logout(); err != nil {
		return OutcomeCancelled, err
	}
	return OutcomeLoggedOut, nil
}

// Logout removes token and user, then reloads the UI.
func (g *Guard) Logout() error {
	if err := g.clear(); err != nil {
		return err
	}
	if g.reloader != nil {
		g.reloader.Reload()
	}
	return nil
}

func (g *Guard) clear() error {
	if err := g.storage.Delete(storage.KeyToken, storage.KeyUser); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

func (g *Guard) load() (Session, bool) {
	token, err := g.storage.Get(storage.KeyToken)
	if err != nil || token == "" {
		return Session{}, false
	}
	raw, err := g.storage.Get(storage.KeyUser)
	if err != nil {
		return Session{}, false
	}
	var user domain.Profile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		g.log.Debug().Err(err).Msg("stored user unparseable")
		return Session{}, false
	}
	if user.Name == "" && user.Email == "" {
		return Session{}, false
	}
	return Session{Token: token, User: user}, true
}

// DisplayName is the first whitespace-separated word of a full name.
func DisplayName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func rejected(err error) bool {
	var sc interface{ StatusCode() int }
	if !errors.As(err, &sc) {
		return false
	}
	switch sc.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}
