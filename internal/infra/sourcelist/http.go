package sourcelist

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"ponder/internal/resilience/circuitbreaker"
	"ponder/internal/resilience/retry"
	"ponder/internal/usecase/seed"

	"github.com/sony/gobreaker"
)

// sourceListUserAgent identifies outbound source list requests.
const sourceListUserAgent = "PonderSeedBot/1.0"

// HTTPSourceList loads candidate titles from a remote newline-delimited
// document. Fetches run through a circuit breaker and retry with backoff,
// and the URL is validated against private address ranges before any
// request is made.
//
// Thread safety: HTTPSourceList is safe for concurrent use.
type HTTPSourceList struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
}

// NewHTTPSourceList creates an HTTPSourceList fetching from cfg.URL.
// Circuit breaker and retry behavior use the source-fetch presets.
func NewHTTPSourceList(cfg Config) *HTTPSourceList {
	s := &HTTPSourceList{
		circuitBreaker: circuitbreaker.New(circuitbreaker.SourceFetchConfig()),
		retryConfig:    retry.SourceFetchConfig(),
		config:         cfg,
	}

	s.client = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= s.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}

			// Redirect targets are validated the same as the original URL.
			if err := validateURL(req.URL.String(), s.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target rejected: %w", err)
			}

			return nil
		},
	}

	return s
}

// Load fetches the document at the configured URL and returns its lines in
// order. A 404 response is reported as seed.ErrSourceListNotFound. Other
// non-2xx statuses surface as retry.HTTPError, so transient server errors
// are retried while client errors fail immediately.
func (s *HTTPSourceList) Load(ctx context.Context) ([]string, error) {
	if err := validateURL(s.config.URL, s.config.DenyPrivateIPs); err != nil {
		return nil, err
	}

	var lines []string

	retryErr := retry.WithBackoff(ctx, s.retryConfig, func() error {
		cbResult, err := s.circuitBreaker.Execute(func() (interface{}, error) {
			return s.doLoad(ctx)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("source list fetch rejected, circuit breaker open",
					slog.String("url", s.config.URL),
					slog.String("state", s.circuitBreaker.State().String()))
			}
			return err
		}

		lines = cbResult.([]string)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return lines, nil
}

// doLoad performs the actual fetch without retry or circuit breaker.
func (s *HTTPSourceList) doLoad(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", sourceListUserAgent)
	req.Header.Set("Accept", "text/plain")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source list request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("source list %s: %w", s.config.URL, seed.ErrSourceListNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	limited := io.LimitReader(resp.Body, s.config.MaxBodySize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("read source list body: %w", err)
	}
	if int64(len(body)) > s.config.MaxBodySize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrListTooLarge, s.config.MaxBodySize)
	}

	return splitLines(string(body)), nil
}
