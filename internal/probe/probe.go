package probe

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/linkpulse/linkpulse/internal/httpclient"
	"github.com/linkpulse/linkpulse/internal/model"
	"github.com/linkpulse/linkpulse/internal/trace"
)

// Transport error codes reported in place of an HTTP status.
const (
	CodeDNSError          = "DNS_ERROR"
	CodeConnectionRefused = "CONNECTION_REFUSED"
	CodeTimeout           = "TIMEOUT"
	CodeSSLCertExpired    = "SSL_CERT_EXPIRED"
	CodeConnectionFailed  = "CONNECTION_FAILED"
)

// reasonPhrases maps well-known broken status codes to their messages.
// Anything else falls back to "HTTP {code}".
var reasonPhrases = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found",
	http.StatusTooManyRequests:     "Too Many Requests",
	http.StatusInternalServerError: "Internal Server Error",
	http.StatusBadGateway:          "Bad Gateway",
	http.StatusServiceUnavailable:  "Service Unavailable",
	http.StatusGatewayTimeout:      "Gateway Timeout",
}

// capturedHeaders is the response header subset copied into results.
var capturedHeaders = []string{"content-type", "server", "last-modified"}

// Executor issues single-URL health probes.
type Executor struct {
	// SlowThreshold is the latency above which an otherwise healthy
	// response is downgraded to a warning.
	SlowThreshold time.Duration
}

// New returns an Executor with the default 5s slow-response threshold.
func New() *Executor {
	return &Executor{SlowThreshold: 5 * time.Second}
}

// Do consumes one probe request.
func (e *Executor) Do(ctx context.Context, req model.ProbeRequest) model.ProbeResult {
	return e.Probe(ctx, req.URL, req.Options)
}

// Probe issues one HEAD request against target and classifies the outcome.
// It never fails: every error mode is folded into the returned result.
func (e *Executor) Probe(ctx context.Context, target string, opts model.ProbeOptions) model.ProbeResult {
	opts = opts.Normalized()
	userAgent := httpclient.UserAgentFor(opts.UserAgentProfile)
	client := httpclient.New(httpclient.Config{
		Timeout:         opts.Timeout(),
		FollowRedirects: opts.FollowRedirects,
		UserAgent:       userAgent,
		Insecure:        !opts.CheckSSL,
	})

	res := model.ProbeResult{URL: target, Timestamp: time.Now().UTC()}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return brokenResult(res, CodeConnectionFailed, "Connection Failed", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start)
	res.ResponseTimeMs = elapsed.Milliseconds()

	if err != nil {
		code, message := classifyTransportError(err)
		return brokenResult(res, code, message, err)
	}
	defer resp.Body.Close()

	res.StatusCode = model.HTTPStatus(resp.StatusCode)
	res.Headers = headerSubset(resp.Header)
	if strings.HasPrefix(strings.ToLower(target), "https://") && opts.CheckSSL {
		valid := true
		res.SSLValid = &valid
	}

	switch {
	case resp.StatusCode >= 400:
		res.Status = model.StatusBroken
		res.Message = reasonPhrase(resp.StatusCode)
	case elapsed > e.SlowThreshold:
		res.Status = model.StatusWarning
		res.Message = "Slow Response"
	case resp.StatusCode >= 300:
		res.Status = model.StatusRedirect
		res.Message = "Redirect"
	default:
		res.Status = model.StatusHealthy
		res.Message = "OK"
	}

	if opts.FollowRedirects && resp.Request.URL.String() != target {
		walker := trace.New()
		walker.UserAgent = userAgent
		// tracer failure degrades to an absent chain
		res.RedirectChain = walker.Trace(ctx, target)
	}
	return res
}

func brokenResult(res model.ProbeResult, code, message string, err error) model.ProbeResult {
	res.Status = model.StatusBroken
	res.StatusCode = model.ErrorCode(code)
	res.Message = message
	res.ErrorDetail = err.Error()
	return res
}

func reasonPhrase(status int) string {
	if phrase, ok := reasonPhrases[status]; ok {
		return phrase
	}
	return fmt.Sprintf("HTTP %d", status)
}

func headerSubset(h http.Header) map[string]string {
	out := make(map[string]string, len(capturedHeaders))
	for _, name := range capturedHeaders {
		if v := h.Get(name); v != "" {
			out[name] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// classifyTransportError normalizes a failed request into an error code and
// a human-readable message. Certificate expiry is checked before the generic
// timeout test because DNS and TLS failures can also report as timeouts.
func classifyTransportError(err error) (string, string) {
	var certErr x509.CertificateInvalidError
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &certErr) && certErr.Reason == x509.Expired:
		return CodeSSLCertExpired, "SSL Certificate Expired"
	case errors.As(err, &dnsErr):
		return CodeDNSError, "DNS Resolution Failed"
	case errors.Is(err, syscall.ECONNREFUSED):
		return CodeConnectionRefused, "Connection Refused"
	case isTimeout(err):
		return CodeTimeout, "Request Timeout"
	default:
		return CodeConnectionFailed, "Connection Failed"
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
