package wiseoldman

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/clanhub/hunt-stats/internal/platform/logging"
	"github.com/clanhub/hunt-stats/internal/platform/resilience"
	"github.com/clanhub/hunt-stats/internal/usecase"
)

const (
	defaultBaseURL = "https://api.wiseoldman.net/v2"
	maxBodyBytes   = 6 << 20
)

var errWOMTransient = crerr.New("wiseoldman transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	RateLimit      resilience.RateLimitConfig
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the WiseOldMan API. Every request passes through the
// interval limiter, so a batch of calls is strictly serial and spaced to the
// public quota.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	limiter        *resilience.IntervalLimiter
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	rateCfg := resilience.NormalizeRateLimitConfig(cfg.RateLimit)
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		limiter:        resilience.NewIntervalLimiter(rateCfg.Requests, rateCfg.Window),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchCompetition(ctx context.Context, competitionID int64) (usecase.CompetitionDetails, error) {
	if competitionID <= 0 {
		return usecase.CompetitionDetails{}, fmt.Errorf("competition id must be greater than zero")
	}

	var env competitionEnvelope
	path := fmt.Sprintf("/competitions/%d", competitionID)
	if err := c.doJSON(ctx, path, nil, &env); err != nil {
		return usecase.CompetitionDetails{}, fmt.Errorf("fetch competition %d: %w", competitionID, err)
	}

	return mapCompetition(env), nil
}

func (c *Client) FetchPlayerGains(ctx context.Context, username string, startsAt, endsAt time.Time) (usecase.PlayerGains, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return usecase.PlayerGains{}, fmt.Errorf("username is required")
	}

	path := "/players/" + url.PathEscape(username) + "/gained"
	query := map[string]string{
		"startDate": startsAt.UTC().Format(time.RFC3339),
		"endDate":   endsAt.UTC().Format(time.RFC3339),
	}

	var env gainsEnvelope
	if err := c.doJSON(ctx, path, query, &env); err != nil {
		return usecase.PlayerGains{}, fmt.Errorf("fetch gains for %q: %w", username, err)
	}

	return mapGains(env), nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "wiseoldman circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.executeRequest(ctx, fullURL)
	if c.circuitEnabled {
		if err != nil && isCircuitFailure(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// The gap is enforced before every attempt and measured from the
		// completion of the previous request, retries included.
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		c.limiter.Mark()
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errWOMTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errWOMTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errWOMTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "wiseoldman request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errWOMTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
