// Package session owns the authentication state machine and the persisted
// credential. Other components consult it before issuing any request.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/cinetick/cinetick-go/internal/domain"
	"github.com/cinetick/cinetick-go/internal/store"
)

const tokenKey = "auth_token"

type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerInput struct {
	Name     string `validate:"required,min=2,max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

// Manager drives Unauthenticated -> Authenticating -> Authenticated and back.
// All state mutation is serialized behind one mutex; subscribers are notified
// outside it.
type Manager struct {
	mu       sync.Mutex
	auth     domain.AuthAPI
	store    store.Store
	validate *validator.Validate
	logger   *slog.Logger

	state  State
	user   *domain.User
	token  string
	expiry time.Time

	subs []func(State)
}

// NewManager restores any persisted credential before returning: possession
// of a token counts as authenticated, without a server-side validation call.
// A revoked token therefore looks valid until the first rejected request,
// at which point HandleUnauthorized reconciles the state.
func NewManager(auth domain.AuthAPI, st store.Store, validate *validator.Validate, logger *slog.Logger) *Manager {
	m := &Manager{
		auth:     auth,
		store:    st,
		validate: validate,
		logger:   logger,
		state:    Unauthenticated,
	}

	m.restore()

	return m
}

func (m *Manager) restore() {
	token, ok, err := m.store.Get(tokenKey)
	if err != nil {
		m.logger.Error("failed to read persisted credential", "error", err)
		return
	}

	if !ok || token == "" {
		return
	}

	m.token = token
	m.state = Authenticated
	m.expiry = advisoryExpiry(token)

	m.logger.Info("session restored from persisted credential")
}

// advisoryExpiry reads the exp claim without verifying the signature. The
// token stays opaque to the session contract; a token that is not a JWT
// simply has no known expiry.
func advisoryExpiry(token string) time.Time {
	claims := jwt.MapClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}

	return exp.Time
}

// Login authenticates against the service, persists the returned token, and
// replaces the user profile wholesale.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	input := loginInput{Email: email, Password: password}
	if err := m.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid login input: %w", err)
	}

	m.setState(Authenticating)

	creds, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.setState(Unauthenticated)
		return nil, err
	}

	if err := m.store.Set(tokenKey, creds.AccessToken); err != nil {
		// The in-memory session is still usable; only restore-on-restart is lost.
		m.logger.Warn("failed to persist credential", "error", err)
	}

	m.mu.Lock()
	m.token = creds.AccessToken
	m.user = &creds.User
	m.expiry = advisoryExpiry(creds.AccessToken)
	m.state = Authenticated
	m.mu.Unlock()

	m.logger.Info("login succeeded", "user", creds.User.Email)
	m.notify(Authenticated)

	return &creds.User, nil
}

// Register creates an account. The registration response carries no session
// token, so a successful registration does not authenticate; callers log in
// explicitly afterwards.
func (m *Manager) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	input := registerInput{Name: name, Email: email, Password: password}
	if err := m.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid registration input: %w", err)
	}

	user, err := m.auth.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}

	m.logger.Info("registration succeeded", "user", user.Email)

	return user, nil
}

// Logout clears the persisted credential and resets state synchronously. It
// never calls the network.
func (m *Manager) Logout() {
	if err := m.store.Delete(tokenKey); err != nil {
		m.logger.Error("failed to delete persisted credential", "error", err)
	}

	m.clear()

	m.logger.Info("logged out")
}

// HandleUnauthorized is invoked by the gateway when the service rejects the
// current credential. The session drops it and falls back to unauthenticated.
func (m *Manager) HandleUnauthorized() {
	m.mu.Lock()
	if m.state != Authenticated {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	if err := m.store.Delete(tokenKey); err != nil {
		m.logger.Error("failed to delete persisted credential", "error", err)
	}

	m.clear()

	m.logger.Warn("credential rejected by service, session invalidated")
}

func (m *Manager) clear() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.expiry = time.Time{}
	m.state = Unauthenticated
	m.mu.Unlock()

	m.notify(Unauthenticated)
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

func (m *Manager) Authenticated() bool {
	return m.State() == Authenticated
}

// User returns the current profile; nil when the session was restored from a
// persisted token without a login in this process.
func (m *Manager) User() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.user
}

// Token is the gateway's token source.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.token, m.token != ""
}

// TokenExpiry reports the advisory expiry of the current token. The zero
// time means no expiry could be read.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.expiry, !m.expiry.IsZero()
}

// Subscribe registers a callback for state-change events.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.subs = append(m.subs, fn)
}

func (m *Manager) setState(state State) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()

	m.notify(state)
}

func (m *Manager) notify(state State) {
	m.mu.Lock()
	subs := make([]func(State), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
