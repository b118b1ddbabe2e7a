package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrCatalogUnavailable is returned by Load when no catalog snapshot
// has ever been written, meaning no refresh has succeeded yet.
var ErrCatalogUnavailable = errors.New("release catalog unavailable")

// HTTPClient is the minimal client surface the store needs, kept as an
// interface so tests can substitute a fake.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Store persists the release catalog as a whole-response snapshot on
// disk. Every successful refresh replaces the snapshot; nothing is
// merged.
type Store struct {
	path       string
	url        string
	httpClient HTTPClient
	userAgent  string
}

// Option configures a Store.
type Option func(*Store)

// WithHTTPClient substitutes the HTTP client, mainly for tests.
func WithHTTPClient(c HTTPClient) Option {
	return func(s *Store) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// NewStore creates a store persisting to path and fetching from url.
func NewStore(path, url string, opts ...Option) *Store {
	s := &Store{
		path:       path,
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "dvm",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh fetches the full release list and overwrites the snapshot.
// On any failure the previous snapshot is left untouched and the error
// is returned for the caller to surface as a warning; commands keep
// working against stale data.
func (s *Store) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("build index request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	if tok := githubToken(); tok != "" && strings.Contains(s.url, "github.com") {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch release index: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch release index: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read release index: %w", err)
	}

	// Decode before persisting so a malformed response never replaces
	// a good snapshot.
	var releases []Release
	if err := json.Unmarshal(body, &releases); err != nil {
		return fmt.Errorf("decode release index: %w", err)
	}

	if err := os.WriteFile(s.path, body, 0644); err != nil {
		return fmt.Errorf("write catalog snapshot: %w", err)
	}
	return nil
}

// Load reads the persisted snapshot. ErrCatalogUnavailable means no
// refresh has ever succeeded against this root directory.
func (s *Store) Load() ([]Release, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: run 'dvm list' to fetch releases", ErrCatalogUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog snapshot: %w", err)
	}

	var releases []Release
	if err := json.Unmarshal(data, &releases); err != nil {
		return nil, fmt.Errorf("decode catalog snapshot: %w", err)
	}
	return releases, nil
}

func githubToken() string {
	return strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
}
