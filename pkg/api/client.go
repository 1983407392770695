// Package api is the client for the Vuet REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vuet/vuet-client/pkg/auth"
	"github.com/vuet/vuet-client/pkg/logging"
	"github.com/vuet/vuet-client/pkg/models"
)

// DefaultTimeout is the maximum time to wait for an API response.
const DefaultTimeout = 30 * time.Second

// RequestIDHeader carries a per-request id for correlating client and server logs.
const RequestIDHeader = "X-Request-ID"

// Endpoints maps each record kind to its list endpoint.
var Endpoints = map[models.Kind]string{
	models.KindTask:           "core/task/",
	models.KindEntity:         "core/entity/",
	models.KindCategory:       "core/category/",
	models.KindAlert:          "core/alert/",
	models.KindActionAlert:    "core/action-alert/",
	models.KindTaskAction:     "core/task-action/",
	models.KindReference:      "core/reference/",
	models.KindReferenceGroup: "core/reference-group/",
	models.KindSchoolYear:     "school-terms/school-year/",
	models.KindSchoolTerm:     "school-terms/school-term/",
	models.KindSchoolBreak:    "school-terms/school-break/",
	models.KindRoutine:        "core/routine/",
	models.KindMember:         "core/family-member/",
}

// Client provides access to the Vuet REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     auth.TokenSource
	logger     *zap.Logger
}

// NewClient creates a client for the API at baseURL. A zero timeout uses
// DefaultTimeout.
func NewClient(baseURL string, tokens auth.TokenSource, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		tokens:  tokens,
		logger:  logger.Named("api"),
	}
}

// do sends a request and decodes a JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, endpoint string, in, out any) error {
	target, err := buildURL(c.baseURL, endpoint)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Calling API",
		zap.String("method", method),
		zap.String("url", logging.SanitizeURL(target)),
		zap.String("request_id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{
			Method:     method,
			Path:       endpoint,
			StatusCode: resp.StatusCode,
			Body:       logging.SanitizeBody(respBody),
		}
		c.logger.Warn("API returned error",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", requestID),
			zap.String("body", apiErr.Body))
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", endpoint, err)
	}
	return nil
}

// list fetches a JSON array from endpoint.
func list[T any](ctx context.Context, c *Client, endpoint string) ([]T, error) {
	var records []T
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// detail returns the detail endpoint for one record of a list endpoint.
func detail(listEndpoint string, id int) string {
	return listEndpoint + strconv.Itoa(id) + "/"
}

// buildURL constructs a URL by parsing the base and joining path segments.
// A trailing slash on the last segment is kept; the API routes require it.
func buildURL(baseURL string, pathSegments ...string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	segments := append([]string{u.Path}, pathSegments...)
	u.Path = path.Join(segments...)
	if n := len(pathSegments); n > 0 && strings.HasSuffix(pathSegments[n-1], "/") && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return u.String(), nil
}
