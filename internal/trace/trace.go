package trace

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/linkpulse/linkpulse/internal/httpclient"
	"github.com/linkpulse/linkpulse/internal/model"
)

// Walker re-walks a redirect chain hop by hop with redirect-following
// disabled at the client, so every intermediate response is observed.
type Walker struct {
	MaxHops    int
	HopTimeout time.Duration
	UserAgent  string
}

// New returns a Walker with the tracer defaults: at most 5 hops, each with
// its own 5s timeout independent of the probe's configured timeout.
func New() *Walker {
	return &Walker{MaxHops: 5, HopTimeout: 5 * time.Second}
}

// Trace follows redirects starting from target and records each hop, first
// hop first. It stops on hop budget exhaustion, a non-redirect response, a
// missing Location header, a revisited URL, or any request failure; failures
// are swallowed. Returns nil when no hops were recorded.
func (w *Walker) Trace(ctx context.Context, target string) []model.RedirectHop {
	client := httpclient.New(httpclient.Config{
		Timeout:         w.HopTimeout,
		FollowRedirects: false,
		UserAgent:       w.UserAgent,
		Insecure:        true,
	})

	var hops []model.RedirectHop
	current := target
	seen := make(map[string]struct{})

	for i := 0; i < w.MaxHops; i++ {
		if _, ok := seen[current]; ok {
			// loop
			break
		}
		seen[current] = struct{}{}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
		if err != nil {
			break
		}
		resp, err := client.Do(req)
		if err != nil {
			break
		}
		if resp.StatusCode < 300 || resp.StatusCode >= 400 {
			_ = resp.Body.Close()
			break
		}
		loc := resp.Header.Get("Location")
		_ = resp.Body.Close()
		if loc == "" {
			break
		}
		next, err := resp.Request.URL.Parse(loc)
		if err != nil {
			break
		}
		hops = append(hops, model.RedirectHop{
			FromURL:        current,
			HTTPStatus:     resp.StatusCode,
			LocationHeader: loc,
			CrossDomain:    crossDomain(resp.Request.URL, next),
		})
		current = next.String()
	}

	if len(hops) == 0 {
		return nil
	}
	return hops
}

func crossDomain(from, to *url.URL) bool {
	fd := registrableDomain(from.Hostname())
	td := registrableDomain(to.Hostname())
	return fd != "" && td != "" && fd != td
}

func registrableDomain(host string) string {
	d, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host))
	if err != nil {
		return ""
	}
	return d
}
