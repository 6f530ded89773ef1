// Package hubfs provides a read-only view of the upstream hunt
// repository through the GitHub contents API. It is the backing store
// for the repository browser; the local vault stays authoritative for
// the catalog itself.
package hubfs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/thorcollective/hearth/internal/apperr"
)

const (
	defaultAPIBase = "https://api.github.com"
	defaultRawBase = "https://raw.githubusercontent.com"

	// rawLimit bounds a single raw-file response; hunt files are small.
	rawLimit = 2 << 20
)

// Entry is one item of a repository directory listing.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file" or "dir"
	Size int64  `json:"size,omitempty"`
}

// Client talks to one repository at one branch.
type Client struct {
	owner   string
	repo    string
	branch  string
	apiBase string
	rawBase string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the GitHub API and raw endpoints. Used by tests
// and by deployments that front GitHub with a proxy.
func WithBaseURLs(apiBase, rawBase string) Option {
	return func(c *Client) {
		c.apiBase = strings.TrimRight(apiBase, "/")
		c.rawBase = strings.TrimRight(rawBase, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for owner/repo at branch.
func New(owner, repo, branch string, opts ...Option) *Client {
	c := &Client{
		owner:   owner,
		repo:    repo,
		branch:  branch,
		apiBase: defaultAPIBase,
		rawBase: defaultRawBase,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the entries under path ("" for the repository root),
// directories first, each group sorted by name. A missing path maps to
// apperr.ErrNotFound.
func (c *Client) List(ctx context.Context, path string) ([]Entry, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.apiBase, c.owner, c.repo, escapePath(path), url.QueryEscape(c.branch))

	body, err := c.get(ctx, u, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var entries []Entry
	if err := json.NewDecoder(body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("hubfs: decode listing for %q: %w", path, err)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Type != entries[j].Type {
			return entries[i].Type == "dir"
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Raw fetches the raw bytes of one file at path.
func (c *Client) Raw(ctx context.Context, path string) ([]byte, error) {
	u := fmt.Sprintf("%s/%s/%s/%s/%s",
		c.rawBase, c.owner, c.repo, url.PathEscape(c.branch), escapePath(path))

	body, err := c.get(ctx, u, "")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, rawLimit))
	if err != nil {
		return nil, fmt.Errorf("hubfs: read %q: %w", path, err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, rawURL, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("hubfs: build request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hubfs: %s/%s: %w", c.owner, c.repo, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("hubfs: %s: %w", rawURL, apperr.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("hubfs: %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	return resp.Body, nil
}

// escapePath escapes each path segment while keeping the separators.
func escapePath(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
