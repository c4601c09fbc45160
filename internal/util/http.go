package util

import (
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/sirupsen/logrus"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

type HTTPClientOptions struct {
	Timeout   time.Duration
	UserAgent string
	// Cloudflare wraps the transport with browser-like TLS and headers,
	// which the wiki's CDN expects.
	Cloudflare bool
	Transport  http.RoundTripper
	Log        logrus.FieldLogger
}

func NewHTTPClient(opts HTTPClientOptions) *http.Client {
	base := opts.Transport
	if base == nil {
		base = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 16,
			ForceAttemptHTTP2:   true,
		}
	}
	if opts.Cloudflare {
		base = cloudflarebp.AddCloudFlareByPass(base)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: roundTripper{base: base, ua: ua, log: opts.Log},
	}
}

type roundTripper struct {
	base http.RoundTripper
	ua   string
	log  logrus.FieldLogger
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", rt.ua)
	}
	if rt.log != nil {
		rt.log.WithFields(logrus.Fields{"method": req.Method, "url": req.URL.String()}).Debug("http request")
	}
	return rt.base.RoundTrip(req)
}
