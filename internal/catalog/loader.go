package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Streamdex/1.0"

	// Retry budgets. Rate limiting gets a longer, more patient schedule
	// than ordinary fetch/parse failures.
	maxRateLimitRetries    = 3
	maxRecoverableRetries  = 2
	rateLimitBackoffStep   = 2000 * time.Millisecond
	recoverableBackoffStep = 1000 * time.Millisecond
)

// document is the wire shape of the catalog payload. A missing movies
// field decodes to nil and is treated as an empty catalog.
type document struct {
	Movies []MovieRecord `json:"movies"`
}

// Loader performs the one logical fetch of the catalog document with
// bounded retry. Concurrent Load calls are coalesced through singleflight
// so two completions can never race to produce two different record sets.
type Loader struct {
	url        string
	httpClient *http.Client
	sleep      func(time.Duration)
	group      singleflight.Group
	logger     *slog.Logger
}

// NewLoader creates a catalog loader for the given document URL.
func NewLoader(url string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		url: url,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		sleep:  time.Sleep,
		logger: logger,
	}
}

// SetHTTPClient replaces the underlying HTTP client. A caching transport
// may be installed here; the loader itself never implements caching.
func (l *Loader) SetHTTPClient(c *http.Client) {
	if c != nil {
		l.httpClient = c
	}
}

// SetSleep replaces the backoff wait function. Tests inject a fake to
// avoid real wall-clock delays.
func (l *Loader) SetSleep(fn func(time.Duration)) {
	if fn != nil {
		l.sleep = fn
	}
}

// Load fetches and parses the catalog document, retrying per the backoff
// policy. On exhaustion it returns a *LoadError carrying the last cause.
// Duplicate calls issued while a load is in flight share its result.
func (l *Loader) Load(ctx context.Context) ([]MovieRecord, error) {
	v, err, _ := l.group.Do("catalog", func() (interface{}, error) {
		return l.loadWithRetry(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]MovieRecord), nil
}

func (l *Loader) loadWithRetry(ctx context.Context) ([]MovieRecord, error) {
	var (
		rateLimited int
		recoverable int
		attempts    int
		lastErr     error
	)

	for {
		attempts++
		records, err := l.fetchOnce(ctx)
		if err == nil {
			l.logger.Info("catalog loaded", "records", len(records), "attempts", attempts)
			return records, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, &LoadError{Attempts: attempts, Cause: ctx.Err()}
		}

		var wait time.Duration
		if isRateLimited(err) {
			rateLimited++
			if rateLimited > maxRateLimitRetries {
				break
			}
			wait = time.Duration(rateLimited) * rateLimitBackoffStep
		} else {
			recoverable++
			if recoverable > maxRecoverableRetries {
				break
			}
			wait = time.Duration(recoverable) * recoverableBackoffStep
		}

		l.logger.Warn("catalog fetch failed, retrying", "error", err, "wait", wait)
		l.sleep(wait)
	}

	l.logger.Error("catalog load failed", "attempts", attempts, "error", lastErr)
	return nil, &LoadError{Attempts: attempts, Cause: lastErr}
}

// fetchOnce performs a single GET of the catalog document.
func (l *Loader) fetchOnce(ctx context.Context) ([]MovieRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	// The document never changes within a session; any intermediary
	// cache may serve it.
	req.Header.Set("Cache-Control", "max-age=86400")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Movies == nil {
		return []MovieRecord{}, nil
	}
	return doc.Movies, nil
}

func isRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
