package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client fetches paginated film listings for one country at a time. The
// sort criterion and playable filter are fixed; free-text fields are pinned
// to one locale regardless of the target country so descriptive columns stay
// consistent across markets.
type Client struct {
	baseURL    string
	userAgent  string
	pageDelay  time.Duration
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(baseURL, userAgent string, pageDelay, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		pageDelay:  pageDelay,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// FetchPage retrieves and validates a single listing page for a country.
// Any non-200 status or shape deviation is a fatal error; there is no retry.
func (c *Client) FetchPage(ctx context.Context, countryCode string, page int) (*Page, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u, err := url.Parse(c.baseURL + "/browse/films")
	if err != nil {
		return nil, fmt.Errorf("failed to build request URL: %w", err)
	}
	q := u.Query()
	q.Set("sort", "popularity_quality_score")
	q.Set("playable", "true")
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Client", "web")
	req.Header.Set("Client-Country", countryCode)
	// force one locale for title, synopsis, editorial, etc.
	req.Header.Set("Accept-Language", "en-US")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %d for %s: %w", page, countryCode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error fetching page %d for %s: %d %s",
			page, countryCode, resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	parsed, err := ParsePage(data)
	if err != nil {
		return nil, fmt.Errorf("page %d for %s: %w", page, countryCode, err)
	}

	slog.Debug("Fetched page", "country", countryCode, "page", page,
		"films", len(parsed.Films), "next", parsed.Meta.NextPage)

	return parsed, nil
}

// FetchAll walks a country's listing page by page, invoking fn for each
// validated page, until next_page is null. The returned page is always
// processed before the cursor is checked, so at least one page is fetched.
// A fixed delay separates consecutive requests. Returns the number of pages
// fetched.
func (c *Client) FetchAll(ctx context.Context, countryCode string, fn func(*Page) error) (int, error) {
	page := 1
	fetched := 0

	for {
		parsed, err := c.FetchPage(ctx, countryCode, page)
		if err != nil {
			return fetched, err
		}
		fetched++

		if err := fn(parsed); err != nil {
			return fetched, err
		}

		if parsed.Meta.NextPage == nil {
			return fetched, nil
		}
		page = *parsed.Meta.NextPage

		if err := c.Pause(ctx); err != nil {
			return fetched, err
		}
	}
}

// Pause sleeps for the fixed inter-request delay. It is not adaptive and
// does not back off; errors are fatal, never retried.
func (c *Client) Pause(ctx context.Context) error {
	if c.pageDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(c.pageDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
