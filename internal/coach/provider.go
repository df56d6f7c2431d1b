package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const maxResponseTokens = 1024

// ProviderSettings configures an external text-generation provider.
type ProviderSettings struct {
	APIKey  string
	Model   string
	BaseURL string
	// Timeout bounds a single call, including reading the body.
	Timeout time.Duration
	// RateLimit is requests per minute; zero disables limiting.
	RateLimit int
	// FailureThreshold is the consecutive failure count that opens the
	// circuit.
	FailureThreshold int
	HTTPClient       *http.Client
}

var errRateLimited = errors.New("local rate limit reached")

// guardedClient posts JSON to a provider behind a rate limiter and a
// circuit breaker. Every failure comes back as a *ProviderError.
type guardedClient struct {
	name           string
	httpClient     *http.Client
	timeout        time.Duration
	limiter        *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
	logger         *logrus.Logger
}

func newGuardedClient(name string, s ProviderSettings, logger *logrus.Logger) *guardedClient {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	threshold := uint32(3)
	if s.FailureThreshold > 0 {
		threshold = uint32(s.FailureThreshold)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if s.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.RateLimit)), s.RateLimit)
	}

	httpClient := s.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"circuit":    name,
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Info("Provider circuit breaker state changed")
		},
	})

	return &guardedClient{
		name:           name,
		httpClient:     httpClient,
		timeout:        timeout,
		limiter:        limiter,
		circuitBreaker: cb,
		logger:         logger,
	}
}

// postJSON sends body to url and decodes a 2xx response into out.
func (g *guardedClient) postJSON(ctx context.Context, url string, headers map[string]string, body, out interface{}) error {
	if !g.limiter.Allow() {
		return &ProviderError{Provider: g.name, Err: errRateLimited}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return &ProviderError{Provider: g.name, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	_, err = g.circuitBreaker.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := g.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, &ProviderError{
				Provider:   g.name,
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("unexpected response: %s", bytes.TrimSpace(snippet)),
			}
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) {
			return pe
		}
		return &ProviderError{Provider: g.name, Err: err}
	}
	return nil
}

// State exposes the circuit state for health reporting.
func (g *guardedClient) State() gobreaker.State {
	return g.circuitBreaker.State()
}
