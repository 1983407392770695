package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vuet/vuet-client/pkg/apperrors"
	"github.com/vuet/vuet-client/pkg/retry"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

var testPolicy = &retry.Config{
	MaxRetries:   2,
	InitialDelay: time.Millisecond,
	MaxDelay:     2 * time.Millisecond,
	Multiplier:   2,
}

func createTestToken(t *testing.T, userID int, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{UserID: userID, TokenType: "access"}
	if !expiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestSource(t *testing.T, baseURL, access, refresh string) *RefreshingSource {
	t.Helper()
	s, err := NewRefreshingSource(baseURL, access, refresh, time.Minute, testPolicy, zaptest.NewLogger(t))
	require.NoError(t, err)
	s.now = func() time.Time { return testNow }
	return s
}

func TestParseClaims(t *testing.T) {
	token := createTestToken(t, 42, testNow.Add(time.Hour))

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.True(t, claims.Expiry().Equal(testNow.Add(time.Hour)))

	_, err = ParseClaims("not-a-token")
	assert.Error(t, err)
}

func TestParseClaims_ExpiredTokenStillParses(t *testing.T) {
	claims, err := ParseClaims(createTestToken(t, 1, testNow.Add(-24*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
}

func TestStaticToken(t *testing.T) {
	token, err := StaticToken("abc").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = StaticToken("").Token(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoToken)
}

func TestRefreshingSource_ValidTokenNotRefreshed(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	access := createTestToken(t, 7, testNow.Add(time.Hour))
	s := newTestSource(t, srv.URL+"/", access, "refresh-token")

	token, err := s.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, access, token)
	assert.Equal(t, 7, s.UserID())
	assert.Zero(t, calls.Load())
}

func TestRefreshingSource_RefreshesNearExpiry(t *testing.T) {
	fresh := createTestToken(t, 7, testNow.Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/token/refresh/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-token", body["refresh"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(RefreshResponse{Access: fresh, Refresh: "rotated"})
	}))
	defer srv.Close()

	s := newTestSource(t, srv.URL+"/", createTestToken(t, 7, testNow.Add(30*time.Second)), "refresh-token")

	token, err := s.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, token)
	assert.Equal(t, "rotated", s.refresh)
}

func TestRefreshingSource_RefreshRejected(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Token is invalid or expired"}`))
	}))
	defer srv.Close()

	s := newTestSource(t, srv.URL+"/", createTestToken(t, 7, testNow.Add(-time.Minute)), "stale")

	_, err := s.Token(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load(), "rejected refresh must not be retried")
}

func TestRefreshingSource_ServerErrorKeepsOldToken(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	old := createTestToken(t, 7, testNow.Add(-time.Minute))
	s := newTestSource(t, srv.URL+"/", old, "refresh-token")

	_, err := s.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.HTTPStatus())
	assert.Equal(t, int32(3), calls.Load(), "initial attempt plus two retries")
	assert.Equal(t, old, s.access)
}

func TestRefreshingSource_RetriesTransientFailure(t *testing.T) {
	fresh := createTestToken(t, 7, testNow.Add(time.Hour))
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(RefreshResponse{Access: fresh})
	}))
	defer srv.Close()

	s := newTestSource(t, srv.URL+"/", createTestToken(t, 7, testNow.Add(-time.Minute)), "refresh-token")

	token, err := s.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, token)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "refresh-token", s.refresh, "refresh token kept when not rotated")
}

func TestStatusError(t *testing.T) {
	assert.ErrorIs(t, &StatusError{StatusCode: http.StatusForbidden}, apperrors.ErrUnauthorized)
	assert.NotErrorIs(t, &StatusError{StatusCode: http.StatusInternalServerError}, apperrors.ErrUnauthorized)
	assert.True(t, (&StatusError{StatusCode: http.StatusTooManyRequests}).IsRetryable())
	assert.False(t, (&StatusError{StatusCode: http.StatusBadRequest}).IsRetryable())
	assert.Equal(t, "refresh endpoint returned status 500: oops", (&StatusError{StatusCode: 500, Body: "oops"}).Error())
}

func TestRefreshingSource_ExpiredWithoutRefreshToken(t *testing.T) {
	s := newTestSource(t, "http://localhost:8000/", createTestToken(t, 7, testNow.Add(-time.Minute)), "")

	_, err := s.Token(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRefreshingSource_TokenWithoutExpiry(t *testing.T) {
	access := createTestToken(t, 3, time.Time{})
	s := newTestSource(t, "http://localhost:8000/", access, "")

	token, err := s.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, access, token)
}

func TestRefreshingSource_Set(t *testing.T) {
	s := newTestSource(t, "http://localhost:8000/", createTestToken(t, 1, testNow.Add(time.Hour)), "")

	require.NoError(t, s.Set(createTestToken(t, 2, testNow.Add(time.Hour)), "r"))
	assert.Equal(t, 2, s.UserID())

	assert.ErrorIs(t, s.Set("", ""), apperrors.ErrNoToken)
	assert.Error(t, s.Set("garbage", ""))
	assert.Equal(t, 2, s.UserID(), "failed Set must keep the previous pair")
}

func TestNewRefreshingSource_RequiresAccessToken(t *testing.T) {
	_, err := NewRefreshingSource("http://localhost:8000/", "", "r", time.Minute, nil, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, apperrors.ErrNoToken)
}
