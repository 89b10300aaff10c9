package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	statusPath   = "/api/2/status"
	metadataPath = "/api/2/metadata"

	defaultTimeout = 30 * time.Second
)

// Client talks to one Aleph server. It is a value type; background
// fetches each own their copy, captured at launch time.
type Client struct {
	BaseURL   string
	Token     string
	UserAgent string
	HTTP      *http.Client
}

// Result reduces one poll cycle (status + metadata) to a single
// value. Err takes priority: when set, Status and Metadata are zero
// and must not be applied to state.
type Result struct {
	Status   Status
	Metadata Metadata
	Err      string
}

func (c Client) endpointFor(path string) (string, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return "", fmt.Errorf("missing api base url")
	}
	u, err := url.Parse(strings.TrimRight(c.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid api url: %w", err)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimPrefix(strings.TrimSpace(path), "/")
	return u.String(), nil
}

func (c Client) get(ctx context.Context, path string) ([]byte, error) {
	endpoint, err := c.endpointFor(path)
	if err != nil {
		return nil, err
	}
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: defaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Token) != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if strings.TrimSpace(c.UserAgent) != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return b, nil
}

// Status fetches and decodes the current status snapshot.
func (c Client) Status(ctx context.Context) (Status, error) {
	b, err := c.get(ctx, statusPath)
	if err != nil {
		return Status{}, err
	}
	return ParseStatus(b)
}

// Metadata fetches and decodes the server metadata.
func (c Client) Metadata(ctx context.Context) (Metadata, error) {
	b, err := c.get(ctx, metadataPath)
	if err != nil {
		return Metadata{}, err
	}
	return ParseMetadata(b)
}

// Fetch runs the status and metadata requests concurrently and
// reduces them to one Result. The requests do not depend on each
// other, but any failure wins over a half success: nothing from a
// partially successful cycle is ever applied.
func (c Client) Fetch(ctx context.Context) Result {
	var (
		st   Status
		meta Metadata
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		st, err = c.Status(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		meta, err = c.Metadata(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{Err: err.Error()}
	}
	return Result{Status: st, Metadata: meta}
}
