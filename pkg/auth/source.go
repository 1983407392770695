package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vuet/vuet-client/pkg/apperrors"
	"github.com/vuet/vuet-client/pkg/logging"
	"github.com/vuet/vuet-client/pkg/retry"
)

// RefreshPath is the token refresh endpoint, relative to the API base URL.
const RefreshPath = "auth/token/refresh/"

// TokenSource supplies the bearer token for API requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token that is never refreshed.
type StaticToken string

// Token returns the token, or apperrors.ErrNoToken when it is empty.
func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", apperrors.ErrNoToken
	}
	return string(t), nil
}

// RefreshingSource holds an access/refresh token pair and exchanges the
// refresh token for a new access token shortly before the access token
// expires. Tokens live in memory only.
type RefreshingSource struct {
	mu      sync.Mutex
	access  string
	refresh string
	claims  *Claims

	refreshURL string
	skew       time.Duration
	policy     *retry.Config
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

var _ TokenSource = (*RefreshingSource)(nil)

// RefreshResponse is the body returned by the refresh endpoint. The API may
// rotate the refresh token; an empty Refresh keeps the current one.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// StatusError is a non-200 answer from the refresh endpoint. 401 and 403
// unwrap to apperrors.ErrUnauthorized.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("refresh endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("refresh endpoint returned status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// IsRetryable reports whether the refresh may succeed on a later attempt.
func (e *StatusError) IsRetryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// HTTPStatus returns the response status code.
func (e *StatusError) HTTPStatus() int { return e.StatusCode }

// NewRefreshingSource creates a source for the given token pair. baseURL is
// the API base URL; skew is how long before expiry a refresh is attempted.
// Transient refresh failures are retried with policy; nil uses
// retry.DefaultConfig.
func NewRefreshingSource(baseURL, access, refresh string, skew time.Duration, policy *retry.Config, logger *zap.Logger) (*RefreshingSource, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	s := &RefreshingSource{
		refreshURL: base.JoinPath(RefreshPath).String(),
		skew:       skew,
		policy:     policy,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.Named("auth"),
		now:        time.Now,
	}
	if err := s.Set(access, refresh); err != nil {
		return nil, err
	}
	return s, nil
}

// Set replaces the token pair, for instance after a fresh login.
func (s *RefreshingSource) Set(access, refresh string) error {
	if access == "" {
		return apperrors.ErrNoToken
	}
	claims, err := ParseClaims(access)
	if err != nil {
		return fmt.Errorf("invalid access token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	s.claims = claims
	return nil
}

// UserID returns the user the current access token was issued to.
func (s *RefreshingSource) UserID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.claims.UserID
}

// Token returns a valid access token, refreshing it first when it expires
// within the configured skew. A token without exp is used as is.
func (s *RefreshingSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry := s.claims.Expiry()
	if expiry.IsZero() || s.now().Add(s.skew).Before(expiry) {
		return s.access, nil
	}
	if s.refresh == "" {
		return "", fmt.Errorf("access token expired at %s and no refresh token is set: %w",
			expiry.Format(time.RFC3339), apperrors.ErrUnauthorized)
	}

	if err := s.refreshLocked(ctx); err != nil {
		return "", err
	}
	return s.access, nil
}

func (s *RefreshingSource) refreshLocked(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{"refresh": s.refresh})
	if err != nil {
		return fmt.Errorf("encode refresh request: %w", err)
	}

	var refreshResp RefreshResponse
	err = retry.DoIfRetryable(ctx, s.policy, func() error {
		var err error
		refreshResp, err = s.exchange(ctx, body)
		return err
	})
	if err != nil {
		return err
	}

	claims, err := ParseClaims(refreshResp.Access)
	if err != nil {
		return fmt.Errorf("parse refreshed token: %w", err)
	}

	s.access = refreshResp.Access
	s.claims = claims
	if refreshResp.Refresh != "" {
		s.refresh = refreshResp.Refresh
	}

	s.logger.Info("Refreshed access token",
		zap.Int("user_id", claims.UserID),
		zap.Time("expires_at", claims.Expiry()))
	return nil
}

// exchange performs one refresh request.
func (s *RefreshingSource) exchange(ctx context.Context, body []byte) (RefreshResponse, error) {
	var out RefreshResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.refreshURL, bytes.NewReader(body))
	if err != nil {
		return out, fmt.Errorf("create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("read refresh response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return out, &StatusError{StatusCode: resp.StatusCode, Body: logging.SanitizeBody(respBody)}
	}

	if err := json.Unmarshal(respBody, &out); err != nil {
		return out, fmt.Errorf("decode refresh response: %w", err)
	}
	if out.Access == "" {
		return out, fmt.Errorf("refresh response missing access token")
	}
	return out, nil
}
