package source

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"regexp"
)

var (
	shareURL = regexp.MustCompile(`^(https?://[^/]+)/spreadsheets/d/([a-zA-Z0-9_-]+)`)
	shareGID = regexp.MustCompile(`[?#&]gid=(\d+)`)
)

// ExportURL rewrites a spreadsheet share URL into its direct CSV export
// form. When the share URL carries no gid the query parameter is omitted
// entirely. URLs that do not match the share pattern pass through
// unchanged, so callers may point the reader at any CSV-serving endpoint.
func ExportURL(raw string) string {
	m := shareURL.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	out := fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv", m[1], m[2])
	if g := shareGID.FindStringSubmatch(raw); g != nil {
		out += "&gid=" + g[1]
	}
	return out
}

// FetchURL downloads and parses a remote roster. A transport error or
// non-2xx status is fatal for the whole read; no partial row set is
// returned.
func FetchURL(ctx context.Context, client *http.Client, rawURL string) (*ReadResult, error) {
	url := ExportURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build roster request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch roster: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read roster response: %w", err)
	}

	result, err := ParseRoster(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	result.Meta.Source = url
	result.Meta.SHA256 = fmt.Sprintf("%x", sha256.Sum256(data))
	return result, nil
}
