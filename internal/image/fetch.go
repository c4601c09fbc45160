package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/patrickmn/go-cache"
)

// ErrLocalRef is returned by a remote-only Fetcher for refs that are not
// http(s) URLs.
var ErrLocalRef = errors.New("local artwork paths are not allowed")

// Fetcher dereferences artwork references. Refs starting with http:// or
// https:// are downloaded, anything else is read from disk unless the
// Fetcher is remote-only. Failures are returned as-is; retry policy belongs
// to the caller.
type Fetcher struct {
	client     *http.Client
	cache      *cache.Cache
	remoteOnly bool
}

type FetcherOption func(*Fetcher)

// RemoteOnly rejects refs that would be read from the local filesystem.
func RemoteOnly() FetcherOption {
	return func(f *Fetcher) { f.remoteOnly = true }
}

// NewFetcher returns a Fetcher using client. A positive ttl keeps downloaded
// bytes in memory for that long.
func NewFetcher(client *http.Client, ttl time.Duration, opts ...FetcherOption) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	f := &Fetcher{client: client}
	if ttl > 0 {
		f.cache = cache.New(ttl, 2*ttl)
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the raw bytes behind ref.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if !IsRemote(ref) {
		if f.remoteOnly {
			return nil, &ArtworkFetchError{Ref: ref, Err: ErrLocalRef}
		}
		return readFile(ref)
	}

	if f.cache != nil {
		if v, ok := f.cache.Get(ref); ok {
			return v.([]byte), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, &ArtworkFetchError{Ref: ref, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &ArtworkFetchError{Ref: ref, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ArtworkFetchError{Ref: ref, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ArtworkFetchError{Ref: ref, Err: err}
	}

	if f.cache != nil {
		f.cache.SetDefault(ref, body)
	}
	return body, nil
}

// Load fetches and decodes ref.
func (f *Fetcher) Load(ctx context.Context, ref string) (image.Image, error) {
	b, err := f.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	return decode(ref, b)
}

// loadFile decodes a local file regardless of fetcher policy. It serves the
// configured base background.
func loadFile(path string) (image.Image, error) {
	b, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return decode(path, b)
}

func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &ArtworkFetchError{Ref: path, Err: err}
	}
	return b, nil
}

func decode(ref string, b []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, &DecodeError{Ref: ref, Err: err}
	}
	return img, nil
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
