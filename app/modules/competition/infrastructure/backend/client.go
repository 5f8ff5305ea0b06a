package competitionbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrInvalidCredentials is returned when the backend rejects a login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when the service token is rejected.
	ErrUnauthorized = errors.New("backend rejected service token")

	// ErrUnexpectedStatus is returned for any other non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected backend status")
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 32 << 20

// HTTPClient talks to the backend over HTTP with token authentication.
type HTTPClient struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewHTTPClient creates a client for baseURL (for example
// "https://api.example/api"). token is sent as "Authorization: Token <token>".
func NewHTTPClient(baseURL, token string, timeout time.Duration, logger *slog.Logger, tracer trace.Tracer) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url scheme %q", u.Scheme)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPClient{
		baseURL: u,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		tracer:  tracer,
	}, nil
}

// ListParticipants returns every participant.
func (c *HTTPClient) ListParticipants(ctx context.Context) ([]competitiondomain.Participant, error) {
	var out []competitiondomain.Participant
	if err := c.get(ctx, "participants/", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return out, nil
}

// ListBlocks returns every block.
func (c *HTTPClient) ListBlocks(ctx context.Context) ([]competitiondomain.Block, error) {
	var out []competitiondomain.Block
	if err := c.get(ctx, "blocks/", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}
	return out, nil
}

// ListAscensions returns recorded ascensions, filtered to blockID when set.
func (c *HTTPClient) ListAscensions(ctx context.Context, blockID *int64) ([]competitiondomain.Ascension, error) {
	var query url.Values
	if blockID != nil {
		query = url.Values{"block": {strconv.FormatInt(*blockID, 10)}}
	}
	var out []competitiondomain.Ascension
	if err := c.get(ctx, "blockscores/", query, &out); err != nil {
		return nil, fmt.Errorf("failed to list ascensions: %w", err)
	}
	return out, nil
}

// ListScoreOptions returns the options of blockID.
func (c *HTTPClient) ListScoreOptions(ctx context.Context, blockID int64) ([]competitiondomain.ScoreOption, error) {
	query := url.Values{"block": {strconv.FormatInt(blockID, 10)}}
	var out []competitiondomain.ScoreOption
	if err := c.get(ctx, "scoreoptions/", query, &out); err != nil {
		return nil, fmt.Errorf("failed to list score options: %w", err)
	}
	return out, nil
}

// Login posts credentials to the backend login endpoint.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login: %w", err)
	}

	var out LoginResponse
	err = c.do(ctx, http.MethodPost, "login/", nil, bytes.NewReader(body), false, &out)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	return &out, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, true, out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, authenticated bool, out any) error {
	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.Start(ctx, "Backend."+method+" "+path, trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("backend.path", path),
		))
		defer span.End()
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated && c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "Backend request completed",
		attr.String("method", method),
		attr.String("path", path),
		attr.Int("status", resp.StatusCode),
		attr.Duration("duration", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrUnexpectedStatus, method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

var _ Client = (*HTTPClient)(nil)
