package store

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultLegacyPrefix is the address legacy short links expand to; the saved
// state follows it, base64 encoded.
const DefaultLegacyPrefix = "http://www.timetablegenerator.com/"

// LegacyResolver fetches a state document that predates the store.
type LegacyResolver interface {
	Resolve(ctx context.Context, id string) ([]byte, error)
}

// ShortLinkResolver expands ids minted by a URL shortener. The shortener
// answers with a redirect whose Location carries the encoded state.
type ShortLinkResolver struct {
	Host   string
	Prefix string
	Client *http.Client
}

// NewShortLinkResolver returns a resolver for host with the default prefix.
func NewShortLinkResolver(host string) *ShortLinkResolver {
	return &ShortLinkResolver{
		Host:   host,
		Prefix: DefaultLegacyPrefix,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Resolve requests host/id without following redirects and decodes the
// payload in the Location header. Anything else is ErrNotFound.
func (r *ShortLinkResolver) Resolve(ctx context.Context, id string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL()+"/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := r.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting short link: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: short link answered %d", ErrNotFound, resp.StatusCode)
	}

	location := resp.Header.Get("Location")
	prefix := r.Prefix
	if prefix == "" {
		prefix = DefaultLegacyPrefix
	}
	encoded, ok := strings.CutPrefix(location, prefix)
	if !ok || encoded == "" {
		return nil, fmt.Errorf("%w: unexpected redirect %q", ErrNotFound, location)
	}

	data, err := decodeLegacy(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding payload: %v", ErrNotFound, err)
	}
	return data, nil
}

func (r *ShortLinkResolver) baseURL() string {
	host := strings.TrimRight(r.Host, "/")
	if strings.Contains(host, "://") {
		return host
	}
	return "http://" + host
}

// client returns a copy of the configured client that stops at the first redirect.
func (r *ShortLinkResolver) client() *http.Client {
	c := http.Client{Timeout: 10 * time.Second}
	if r.Client != nil {
		c = *r.Client
	}
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &c
}

// decodeLegacy accepts standard or URL-safe base64, padded or not.
func decodeLegacy(s string) ([]byte, error) {
	s = strings.NewReplacer("-", "+", "_", "/").Replace(s)
	s = strings.TrimRight(s, "=")
	return base64.RawStdEncoding.DecodeString(s)
}
