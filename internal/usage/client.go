package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/cursorbar/cursorbar/internal/statestore"
)

// usageAPIBase is a package variable so tests can point the client at a
// fixture server.
var usageAPIBase = "https://cursor.com"

const (
	sessionCookie   = "WorkosCursorSessionToken"
	startOfMonthKey = "startOfMonth"

	// The endpoint gates on browser-looking requests; a bare Go client UA
	// gets a 403 from the edge.
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

type Client struct {
	BaseURL    string // empty means the public endpoint
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{HTTPClient: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Client) base() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return usageAPIBase
}

// modelEntry mirrors the per-model object in the usage response.
type modelEntry struct {
	NumRequests     int `json:"numRequests"`
	NumTokens       int `json:"numTokens"`
	MaxRequestUsage int `json:"maxRequestUsage"`
}

// Fetch queries the usage endpoint for the current billing cycle. Any
// non-200 status is an error carrying the response body as detail.
func (c *Client) Fetch(ctx context.Context, cred statestore.Credential) (Report, error) {
	base := c.base()
	endpoint := fmt.Sprintf("%s/api/usage?user=%s", base, url.QueryEscape(cred.Subject))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Report{}, err
	}
	req.Header.Set("Cookie", fmt.Sprintf("%s=%s", sessionCookie, url.QueryEscape(cred.UserID+"::"+cred.Token)))
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Origin", base)
	req.Header.Set("Referer", base+"/settings")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("fetching usage: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Report{}, fmt.Errorf("reading usage response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	return decodeReport(body)
}

// decodeReport parses the dynamic response shape: one reserved startOfMonth
// field, every other key a model entry.
func decodeReport(body []byte) (Report, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return Report{}, fmt.Errorf("parsing usage response: %w", err)
	}

	var report Report
	if raw, ok := payload[startOfMonthKey]; ok {
		if err := json.Unmarshal(raw, &report.StartOfMonth); err != nil {
			log.Printf("[usage] startOfMonth is not a string: %v", err)
		}
	}

	keys := lo.Filter(lo.Keys(payload), func(k string, _ int) bool { return k != startOfMonthKey })
	sort.Strings(keys)

	for _, key := range keys {
		var entry modelEntry
		if err := json.Unmarshal(payload[key], &entry); err != nil {
			log.Printf("[usage] skipping %q: %v", key, err)
			continue
		}
		report.Records = append(report.Records, newRecord(key, entry.NumRequests, entry.MaxRequestUsage))
	}

	sortRecords(report.Records)
	return report, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
