package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kreistad/timegrid/pkg/cache"
	errs "github.com/kreistad/timegrid/pkg/errors"
	"github.com/kreistad/timegrid/pkg/observability"
)

// maxBodySize caps fetched payloads. Calendar feeds are text; anything
// past this is either broken or not a calendar.
const maxBodySize = 16 << 20 // 16 MiB

// DefaultClient is the HTTP client used when the caller supplies none.
var DefaultClient = &http.Client{Timeout: 30 * time.Second}

// Fetch GETs rawURL and returns the response body. Transient failures
// (network errors, timeouts, 5xx) are retried with exponential backoff;
// 4xx responses fail immediately with a NOT_FOUND or NETWORK_ERROR code.
// Requests and responses are reported through the HTTP hooks.
func Fetch(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	if err := errs.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	if client == nil {
		client = DefaultClient
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSource, err, "parse URL %q", rawURL)
	}

	var body []byte
	err = RetryWithBackoff(ctx, func() error {
		b, ferr := fetchOnce(ctx, client, rawURL, u)
		if ferr != nil {
			return ferr
		}
		body = b
		return nil
	})
	return body, err
}

// FetchCached is Fetch behind a TTL'd response cache. Remote feeds are
// re-fetched at most once per cache.TTLHTTP; a nil cache fetches
// directly. The namespace scopes keys per feed kind so different
// consumers of one URL do not collide.
func FetchCached(ctx context.Context, client *http.Client, rawURL, namespace string, c cache.Cache, keyer cache.Keyer) ([]byte, error) {
	if c == nil {
		return Fetch(ctx, client, rawURL)
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}

	key := keyer.HTTPKey(namespace, rawURL)
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "http")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "http")

	body, err := Fetch(ctx, client, rawURL)
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, body, cache.TTLHTTP); err == nil {
		observability.Cache().OnCacheSet(ctx, "http", len(body))
	}
	return body, nil
}

func fetchOnce(ctx context.Context, client *http.Client, rawURL string, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "build request")
	}

	observability.HTTP().OnRequest(ctx, http.MethodGet, u.Host, u.Path)
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, u.Host, u.Path, err)
		return nil, Retryable(errs.Wrap(errs.ErrCodeNetwork, err, "fetch %s", u.Host))
	}
	defer resp.Body.Close()

	observability.HTTP().OnResponse(ctx, http.MethodGet, u.Host, u.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errs.New(errs.ErrCodeNotFound, "%s returned 404", u.Host)
	case resp.StatusCode >= 500:
		return nil, Retryable(errs.New(errs.ErrCodeNetwork, "%s returned %d", u.Host, resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, errs.New(errs.ErrCodeNetwork, "%s returned %d", u.Host, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, Retryable(errs.Wrap(errs.ErrCodeNetwork, err, "read response from %s", u.Host))
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", u.Host, maxBodySize)
	}
	return body, nil
}
