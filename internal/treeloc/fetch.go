package treeloc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultSheetURL is the CSV export of the community tree localization sheet.
const DefaultSheetURL = "https://docs.google.com/spreadsheets/d/1CjECty43mkkm1waO4yhQl1rzZ-ZltrBgj00aq-WJX4w/export?format=csv&gid=935118775"

// Fetcher reads a sheet from a local path or an http(s) URL.
type Fetcher struct {
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

// NewFetcher creates a Fetcher with a bounded HTTP timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		maxRetries: 3,
		backoff:    2 * time.Second,
	}
}

// Fetch returns the raw sheet bytes for src.
func (f *Fetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read sheet: %w", err)
		}
		return data, nil
	}

	var lastErr error
	for attempt := 0; attempt < f.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * f.backoff
			log.Warn().Int("attempt", attempt+1).Dur("backoff", backoff).Msg("Retrying sheet download")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		data, retry, err := f.get(ctx, src)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !retry {
			break
		}
	}

	return nil, fmt.Errorf("download sheet: %w", lastErr)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("GET sheet: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("retryable error (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("sheet error (status %d)", resp.StatusCode)
	}

	log.Debug().Str("url", url).Int("bytes", len(body)).Msg("Downloaded sheet")
	return body, false, nil
}
