package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wani-app/api/internal/config"
	"github.com/wani-app/api/internal/domain"
	jwtinfra "github.com/wani-app/api/internal/infrastructure/jwt"
	"github.com/wani-app/api/internal/pkg/id"
)

func newTestProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	p, err := jwtinfra.NewProvider(&config.Config{
		JWTSecret:       "test-secret-do-not-use",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestAuthenticate_MissingHeader(t *testing.T) {
	p := newTestProvider(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	Authenticate(p, &mockUserStore{})(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticate_BadToken(t *testing.T) {
	p := newTestProvider(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rr := httptest.NewRecorder()
	Authenticate(p, &mockUserStore{})(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticate_RefreshTokenRejected(t *testing.T) {
	p := newTestProvider(t)
	refresh, err := p.Issue(jwtinfra.KindRefresh, id.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rr := httptest.NewRecorder()
	Authenticate(p, &mockUserStore{})(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticate_UserGone(t *testing.T) {
	p := newTestProvider(t)
	userID := id.New()
	token, err := p.Issue(jwtinfra.KindAccess, userID)
	require.NoError(t, err)

	us := &mockUserStore{}
	us.On("Get", mock.Anything, userID).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	Authenticate(p, us)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticate_StoreFailureIsNotLogout(t *testing.T) {
	p := newTestProvider(t)
	userID := id.New()
	token, err := p.Issue(jwtinfra.KindAccess, userID)
	require.NoError(t, err)

	us := &mockUserStore{}
	us.On("Get", mock.Anything, userID).Return(nil, errors.New("dynamo: connection refused"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	Authenticate(p, us)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestAuthenticate_InactiveAccount(t *testing.T) {
	p := newTestProvider(t)
	userID := id.New()
	token, err := p.Issue(jwtinfra.KindAccess, userID)
	require.NoError(t, err)

	us := &mockUserStore{}
	us.On("Get", mock.Anything, userID).Return(&domain.User{UserID: userID, Active: false}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	Authenticate(p, us)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAuthenticate_ValidToken_InjectsUser(t *testing.T) {
	p := newTestProvider(t)
	userID := id.New()
	token, err := p.Issue(jwtinfra.KindAccess, userID)
	require.NoError(t, err)

	us := &mockUserStore{}
	us.On("Get", mock.Anything, userID).Return(&domain.User{UserID: userID, Role: domain.RoleUser, Active: true}, nil)

	var gotUser *domain.User
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	Authenticate(p, us)(capture).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, userID, gotUser.UserID)
	assert.Equal(t, domain.RoleUser, gotUser.Role)
}

func TestOptionalAuthenticate_NoHeaderPassesThrough(t *testing.T) {
	p := newTestProvider(t)

	var hadUser bool
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadUser = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	OptionalAuthenticate(p, &mockUserStore{})(capture).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, hadUser)
}

func TestOptionalAuthenticate_BadTokenPassesThrough(t *testing.T) {
	p := newTestProvider(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()
	OptionalAuthenticate(p, &mockUserStore{})(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestOptionalAuthenticate_ValidTokenInjectsUser(t *testing.T) {
	p := newTestProvider(t)
	userID := id.New()
	token, err := p.Issue(jwtinfra.KindAccess, userID)
	require.NoError(t, err)

	us := &mockUserStore{}
	us.On("Get", mock.Anything, userID).Return(&domain.User{UserID: userID, Active: true}, nil)

	var gotUser *domain.User
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	OptionalAuthenticate(p, us)(capture).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, userID, gotUser.UserID)
}
