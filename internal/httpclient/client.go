package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/linkpulse/linkpulse/internal/model"
)

// Config holds settings for a per-probe HTTP client.
type Config struct {
	Timeout         time.Duration
	FollowRedirects bool
	MaxRedirects    int // hop limit when following; 0 means the default of 10
	UserAgent       string
	Insecure        bool // skip TLS certificate verification
}

// uaRoundTripper wraps a base RoundTripper to inject the User-Agent header.
type uaRoundTripper struct {
	base      http.RoundTripper
	userAgent string
}

func (t *uaRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.base == nil {
		t.base = http.DefaultTransport
	}
	// Clone the request to avoid mutating the caller's copy
	r := req.Clone(req.Context())
	if t.userAgent != "" {
		r.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(r)
}

// New returns an HTTP client owned by a single probe. The transport is never
// shared, so TLS verification mode stays per-probe: concurrent probes with
// differing checkSSL settings cannot interfere.
func New(cfg Config) *http.Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.Insecure},
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2: true,
	}

	client := &http.Client{
		Transport: &uaRoundTripper{base: transport, userAgent: cfg.UserAgent},
		Timeout:   cfg.Timeout,
	}

	if cfg.FollowRedirects {
		maxHops := cfg.MaxRedirects
		if maxHops <= 0 {
			maxHops = 10
		}
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxHops {
				// surface the last 3xx response instead of erroring out
				return http.ErrUseLastResponse
			}
			return nil
		}
	} else {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}

const (
	uaChrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaMobile = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1"
	uaBot    = "LinkPulse-HealthCheck/1.0 (+https://github.com/linkpulse/linkpulse)"

	uaDefault = "Mozilla/5.0 (compatible; LinkPulse/1.0; +https://github.com/linkpulse/linkpulse)"
)

// UserAgentFor maps a profile to its User-Agent string.
func UserAgentFor(profile model.UserAgentProfile) string {
	switch profile {
	case model.ProfileChrome:
		return uaChrome
	case model.ProfileMobile:
		return uaMobile
	case model.ProfileBot:
		return uaBot
	default:
		return uaDefault
	}
}
