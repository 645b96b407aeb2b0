package httpcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"git.home.luguber.info/inful/mdinclude/internal/errors"
	"git.home.luguber.info/inful/mdinclude/internal/metrics"
)

// Fetcher downloads remote include targets, consulting the cache first.
type Fetcher struct {
	Client  *http.Client
	Cache   *Cache
	Metrics metrics.Recorder
}

// NewFetcher builds a fetcher with a sane default timeout. cache may be nil.
func NewFetcher(cache *Cache, recorder metrics.Recorder) *Fetcher {
	return &Fetcher{
		Client:  &http.Client{Timeout: 30 * time.Second},
		Cache:   cache,
		Metrics: metrics.OrNoop(recorder),
	}
}

// Fetch returns the response body for url. Cache hits skip the network
// entirely; misses populate the cache on success. Any transport error or
// non-2xx status is fatal for the including page.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if data, ok := f.Cache.Get(url); ok {
		f.Metrics.IncURLFetch(true)
		return data, nil
	}
	f.Metrics.IncURLFetch(false)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Networkf(err, "building request for %s", url)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, errors.Networkf(err, "fetching %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Networkf(
			fmt.Errorf("unexpected status %s", resp.Status), "fetching %s", url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Networkf(err, "reading response body from %s", url)
	}

	f.Cache.Set(url, data)
	return data, nil
}
