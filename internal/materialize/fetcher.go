package materialize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"dreamhouse/internal/domain"
)

// Fetcher downloads a provider image locator and converts it into a
// self-contained data URI. Provider locators are known to expire, so the
// payload is what gets stored and displayed, never the locator itself.
type Fetcher interface {
	Fetch(ctx context.Context, imageURL string) (string, error)
}

// HTTPFetcher performs one bounded outbound fetch per call.
type HTTPFetcher struct {
	httpClient *http.Client
	timeout    time.Duration
}

func NewHTTPFetcher(client *http.Client, timeout time.Duration) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &HTTPFetcher{httpClient: client, timeout: timeout}
}

// Fetch downloads the image at imageURL and returns it encoded as a data URI.
// The whole download, not just the connection, must finish within the
// configured timeout.
func (f *HTTPFetcher) Fetch(ctx context.Context, imageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", domain.ErrFetchTimeout, f.timeout)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrFetchStatus, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: http %d", domain.ErrFetchStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", domain.ErrFetchTimeout, f.timeout)
		}
		return "", fmt.Errorf("%w: read body: %v", domain.ErrFetchStatus, err)
	}

	return EncodeDataURI(resp.Header.Get("Content-Type"), data), nil
}

var _ Fetcher = (*HTTPFetcher)(nil)
