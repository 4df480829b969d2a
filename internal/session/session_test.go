package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/cinetick/cinetick-go/internal/domain"
	"github.com/cinetick/cinetick-go/internal/mocks"
	"github.com/cinetick/cinetick-go/internal/validator"
)

type SessionTestSuite struct {
	suite.Suite
	auth  *mocks.MockAuthAPI
	store *mocks.MockStore
}

func (s *SessionTestSuite) SetupTest() {
	s.auth = &mocks.MockAuthAPI{}
	s.store = mocks.NewMockStore()
}

func (s *SessionTestSuite) newManager() *Manager {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewManager(s.auth, s.store, validator.NewValidator(), logger)
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) TestStartsUnauthenticatedWithoutPersistedToken() {
	m := s.newManager()

	s.Equal(Unauthenticated, m.State())
	s.False(m.Authenticated())

	_, ok := m.Token()
	s.False(ok)
}

func (s *SessionTestSuite) TestRestoresAuthenticatedFromPersistedToken() {
	s.store.Values["auth_token"] = "persisted-token"

	m := s.newManager()

	// Possession of a token counts as authenticated; no validation call is made.
	s.Equal(Authenticated, m.State())

	token, ok := m.Token()
	s.True(ok)
	s.Equal("persisted-token", token)

	// An opaque token has no advisory expiry.
	_, ok = m.TokenExpiry()
	s.False(ok)

	// The profile is unknown until the next login.
	s.Nil(m.User())
}

func (s *SessionTestSuite) TestRestoreReadsAdvisoryExpiryFromJWT() {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	s.Require().NoError(err)

	s.store.Values["auth_token"] = signed

	m := s.newManager()

	got, ok := m.TokenExpiry()
	s.True(ok)
	s.True(got.Equal(exp))
}

func (s *SessionTestSuite) TestLoginSuccess() {
	s.auth.LoginFunc = func(ctx context.Context, email, password string) (*domain.Credentials, error) {
		return &domain.Credentials{
			AccessToken: "fresh-token",
			User:        domain.User{ID: "u1", Name: "Jo", Email: email},
		}, nil
	}

	m := s.newManager()

	var states []State
	m.Subscribe(func(state State) {
		states = append(states, state)
	})

	user, err := m.Login(context.Background(), "jo@example.com", "secret")
	s.Require().NoError(err)

	s.Equal("Jo", user.Name)
	s.Equal(Authenticated, m.State())
	s.Equal("fresh-token", s.store.Values["auth_token"])
	s.Equal([]State{Authenticating, Authenticated}, states)
}

func (s *SessionTestSuite) TestLoginFailureStaysUnauthenticated() {
	wantErr := errors.New("request failed: status 401")

	s.auth.LoginFunc = func(ctx context.Context, email, password string) (*domain.Credentials, error) {
		return nil, wantErr
	}

	m := s.newManager()

	_, err := m.Login(context.Background(), "jo@example.com", "wrong")
	s.ErrorIs(err, wantErr)

	s.Equal(Unauthenticated, m.State())
	s.NotContains(s.store.Values, "auth_token")
}

func (s *SessionTestSuite) TestLoginRejectsInvalidInput() {
	m := s.newManager()

	_, err := m.Login(context.Background(), "not-an-email", "secret")
	s.Error(err)

	_, err = m.Login(context.Background(), "jo@example.com", "")
	s.Error(err)

	s.Equal(Unauthenticated, m.State())
}

func (s *SessionTestSuite) TestLoginReplacesUserWholesale() {
	s.auth.LoginFunc = func(ctx context.Context, email, password string) (*domain.Credentials, error) {
		return &domain.Credentials{
			AccessToken: "token-" + email,
			User:        domain.User{ID: "u-" + email, Name: "N", Email: email},
		}, nil
	}

	m := s.newManager()

	_, err := m.Login(context.Background(), "first@example.com", "secret")
	s.Require().NoError(err)

	_, err = m.Login(context.Background(), "second@example.com", "secret")
	s.Require().NoError(err)

	s.Equal("second@example.com", m.User().Email)
	s.Equal("token-second@example.com", s.store.Values["auth_token"])
}

func (s *SessionTestSuite) TestRegisterDoesNotAuthenticate() {
	s.auth.RegisterFunc = func(ctx context.Context, name, email, password string) (*domain.User, error) {
		return &domain.User{ID: "u2", Name: name, Email: email}, nil
	}

	m := s.newManager()

	user, err := m.Register(context.Background(), "Jo", "jo@example.com", "Str0ng!pass")
	s.Require().NoError(err)

	s.Equal("u2", user.ID)

	// The registration response carries no token: the caller must log in.
	s.Equal(Unauthenticated, m.State())
	s.NotContains(s.store.Values, "auth_token")
}

func (s *SessionTestSuite) TestRegisterRejectsWeakPassword() {
	m := s.newManager()

	_, err := m.Register(context.Background(), "Jo", "jo@example.com", "weak")
	s.Error(err)
}

func (s *SessionTestSuite) TestLogoutClearsStateSynchronously() {
	s.store.Values["auth_token"] = "persisted-token"

	m := s.newManager()
	s.Require().Equal(Authenticated, m.State())

	var states []State
	m.Subscribe(func(state State) {
		states = append(states, state)
	})

	m.Logout()

	s.Equal(Unauthenticated, m.State())
	s.Nil(m.User())
	s.NotContains(s.store.Values, "auth_token")
	s.Equal([]State{Unauthenticated}, states)

	_, ok := m.Token()
	s.False(ok)
}

func (s *SessionTestSuite) TestHandleUnauthorizedInvalidatesSession() {
	s.store.Values["auth_token"] = "revoked-token"

	m := s.newManager()
	s.Require().Equal(Authenticated, m.State())

	m.HandleUnauthorized()

	s.Equal(Unauthenticated, m.State())
	s.NotContains(s.store.Values, "auth_token")
}

func (s *SessionTestSuite) TestHandleUnauthorizedIsANoOpWhenNotAuthenticated() {
	m := s.newManager()

	notified := false
	m.Subscribe(func(State) { notified = true })

	m.HandleUnauthorized()

	s.Equal(Unauthenticated, m.State())
	s.False(notified)
}
