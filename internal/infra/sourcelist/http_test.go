package sourcelist_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ponder/internal/infra/sourcelist"
	"ponder/internal/resilience/retry"
	"ponder/internal/usecase/seed"

	"github.com/sony/gobreaker"
)

// httpTestConfig returns a Config pointing at a local httptest server. The
// private IP check must stay off because the servers listen on loopback.
func httpTestConfig(url string) sourcelist.Config {
	cfg := sourcelist.DefaultConfig()
	cfg.URL = url
	cfg.DenyPrivateIPs = false
	return cfg
}

func TestHTTPSourceList_Load_Success(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "PonderSeedBot") {
			t.Errorf("expected PonderSeedBot user agent, got %q", ua)
		}
		fmt.Fprint(w, "What is justice?\nWhat is time?\n\nCan machines think?\n")
	}))
	defer server.Close()

	list := sourcelist.NewHTTPSourceList(httpTestConfig(server.URL))
	lines, err := list.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	assertLines(t, lines, []string{"What is justice?", "What is time?", "", "Can machines think?", ""})
	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("expected 1 request, got %d", n)
	}
}

func TestHTTPSourceList_Load_CRLF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "What is justice?\r\nWhat is beauty?\r\n")
	}))
	defer server.Close()

	list := sourcelist.NewHTTPSourceList(httpTestConfig(server.URL))
	lines, err := list.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	assertLines(t, lines, []string{"What is justice?", "What is beauty?", ""})
}

func TestHTTPSourceList_Load_NotFound(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	list := sourcelist.NewHTTPSourceList(httpTestConfig(server.URL))
	_, err := list.Load(context.Background())
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !errors.Is(err, seed.ErrSourceListNotFound) {
		t.Errorf("expected ErrSourceListNotFound, got %v", err)
	}

	// A missing list is a configuration problem, not a transient failure.
	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("expected 1 request without retries, got %d", n)
	}
}

func TestHTTPSourceList_Load_ClientError(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	list := sourcelist.NewHTTPSourceList(httpTestConfig(server.URL))
	_, err := list.Load(context.Background())
	if err == nil {
		t.Fatal("expected error for 403 response")
	}

	var httpErr *retry.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected retry.HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", httpErr.StatusCode)
	}
	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("expected 1 request without retries, got %d", n)
	}
}

func TestHTTPSourceList_Load_RetriesServerErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping retry backoff test in short mode")
	}

	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "What is justice?\n")
	}))
	defer server.Close()

	start := time.Now()
	list := sourcelist.NewHTTPSourceList(httpTestConfig(server.URL))
	lines, err := list.Load(context.Background())
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	assertLines(t, lines, []string{"What is justice?", ""})
	if n := atomic.LoadInt32(&requests); n != 3 {
		t.Errorf("expected 3 requests, got %d", n)
	}

	// Two backoff waits: 1s then ~2s.
	if elapsed < 2500*time.Millisecond {
		t.Errorf("expected at least 2.5s of backoff, finished in %v", elapsed)
	}
}

func TestHTTPSourceList_Load_RetryExhaustion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping retry backoff test in short mode")
	}

	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	list := sourcelist.NewHTTPSourceList(httpTestConfig(server.URL))
	_, err := list.Load(context.Background())
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !strings.Contains(err.Error(), "max retry attempts (3) exceeded") {
		t.Errorf("expected retry exhaustion error, got %v", err)
	}

	var httpErr *retry.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected retry.HTTPError in chain, got %v", err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", httpErr.StatusCode)
	}
	if n := atomic.LoadInt32(&requests); n != 3 {
		t.Errorf("expected 3 requests, got %d", n)
	}
}

func TestHTTPSourceList_Load_ContextCancellation(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	list := sourcelist.NewHTTPSourceList(httpTestConfig(server.URL))
	_, err := list.Load(ctx)
	if err == nil {
		t.Fatal("expected error when context expires during backoff")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("expected 1 request before cancellation, got %d", n)
	}
}

func TestHTTPSourceList_Load_BodyTooLarge(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		fmt.Fprint(w, strings.Repeat("What is justice?\n", 64))
	}))
	defer server.Close()

	cfg := httpTestConfig(server.URL)
	cfg.MaxBodySize = 256

	list := sourcelist.NewHTTPSourceList(cfg)
	_, err := list.Load(context.Background())
	if err == nil {
		t.Fatal("expected error for oversized body")
	}
	if !errors.Is(err, sourcelist.ErrListTooLarge) {
		t.Errorf("expected ErrListTooLarge, got %v", err)
	}
	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("expected 1 request without retries, got %d", n)
	}
}

func TestHTTPSourceList_Load_TooManyRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/list", http.StatusFound)
	}))
	defer server.Close()

	cfg := httpTestConfig(server.URL)
	cfg.MaxRedirects = 2

	list := sourcelist.NewHTTPSourceList(cfg)
	_, err := list.Load(context.Background())
	if err == nil {
		t.Fatal("expected error for redirect loop")
	}
	if !errors.Is(err, sourcelist.ErrTooManyRedirects) {
		t.Errorf("expected ErrTooManyRedirects, got %v", err)
	}
}

func TestHTTPSourceList_Load_SuccessfulRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/list", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "What is mind?\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	list := sourcelist.NewHTTPSourceList(httpTestConfig(server.URL + "/old"))
	lines, err := list.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	assertLines(t, lines, []string{"What is mind?", ""})
}

func TestHTTPSourceList_Load_PrivateIPs(t *testing.T) {
	urls := []string{
		"http://127.0.0.1:8080/list",
		"http://10.0.0.8/list",
		"http://172.16.3.4/list",
		"http://192.168.1.20/list",
		"http://169.254.7.7/list",
		"http://[::1]/list",
	}

	for _, url := range urls {
		t.Run(url, func(t *testing.T) {
			cfg := sourcelist.DefaultConfig()
			cfg.URL = url

			list := sourcelist.NewHTTPSourceList(cfg)
			_, err := list.Load(context.Background())
			if err == nil {
				t.Fatal("expected error for private address")
			}
			if !errors.Is(err, sourcelist.ErrPrivateIP) {
				t.Errorf("expected ErrPrivateIP, got %v", err)
			}
		})
	}
}

func TestHTTPSourceList_Load_InvalidURLs(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"missing scheme", "://lists.example.com/questions.txt"},
		{"unsupported scheme", "ftp://lists.example.com/questions.txt"},
		{"empty hostname", "http://"},
		{"unresolvable hostname", "http://sourcelist.invalid/list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sourcelist.DefaultConfig()
			cfg.URL = tt.url

			list := sourcelist.NewHTTPSourceList(cfg)
			_, err := list.Load(context.Background())
			if err == nil {
				t.Fatal("expected error for invalid URL")
			}
			if !errors.Is(err, sourcelist.ErrInvalidURL) {
				t.Errorf("expected ErrInvalidURL, got %v", err)
			}
		})
	}
}

func TestHTTPSourceList_Load_CircuitBreakerOpens(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping circuit breaker test in short mode")
	}

	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	list := sourcelist.NewHTTPSourceList(httpTestConfig(server.URL))

	if _, err := list.Load(context.Background()); err == nil {
		t.Fatal("expected error from failing server")
	}
	if n := atomic.LoadInt32(&requests); n != 3 {
		t.Fatalf("expected 3 requests after first load, got %d", n)
	}

	// The breaker trips once five requests in the window have all failed,
	// so the second load stops reaching the server mid-retry.
	_, err := list.Load(context.Background())
	if err == nil {
		t.Fatal("expected error while circuit breaker is open")
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected gobreaker.ErrOpenState, got %v", err)
	}
	if n := atomic.LoadInt32(&requests); n != 5 {
		t.Errorf("expected 5 total requests, got %d", n)
	}
}
