package model

import (
	"encoding/json"
	"time"
)

// Status classifies the outcome of a single probe.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusBroken   Status = "broken"
	StatusWarning  Status = "warning"
	StatusRedirect Status = "redirect"
	StatusError    Status = "error"
)

// UserAgentProfile selects the User-Agent string a probe identifies with.
type UserAgentProfile string

const (
	ProfileChrome  UserAgentProfile = "chrome"
	ProfileMobile  UserAgentProfile = "mobile"
	ProfileBot     UserAgentProfile = "bot"
	ProfileDefault UserAgentProfile = "default"
)

// ProbeOptions controls how a single probe is issued.
type ProbeOptions struct {
	TimeoutMs        int              `json:"timeoutMs"`
	FollowRedirects  bool             `json:"followRedirects"`
	CheckSSL         bool             `json:"checkSSL"`
	UserAgentProfile UserAgentProfile `json:"userAgentProfile"`
}

// DefaultProbeOptions returns the options used when the caller supplies none.
// Decoding a request body over this value keeps the defaults for absent fields.
func DefaultProbeOptions() ProbeOptions {
	return ProbeOptions{
		TimeoutMs:        15000,
		FollowRedirects:  true,
		CheckSSL:         true,
		UserAgentProfile: ProfileDefault,
	}
}

// Normalized fills zero values with their defaults.
func (o ProbeOptions) Normalized() ProbeOptions {
	if o.TimeoutMs <= 0 {
		o.TimeoutMs = 15000
	}
	if o.UserAgentProfile == "" {
		o.UserAgentProfile = ProfileDefault
	}
	return o
}

// Timeout returns the probe timeout as a duration.
func (o ProbeOptions) Timeout() time.Duration {
	return time.Duration(o.TimeoutMs) * time.Millisecond
}

// ProbeRequest pairs one URL with the options it will be probed with.
// Immutable once constructed; consumed by exactly one probe.
type ProbeRequest struct {
	URL     string       `json:"url"`
	Options ProbeOptions `json:"options"`
}

// StatusCode is an HTTP status code or, for transport failures, a normalized
// error code string. On the wire it is a JSON number or a JSON string.
type StatusCode struct {
	Code    int
	ErrCode string
}

// HTTPStatus wraps a numeric HTTP status code.
func HTTPStatus(code int) StatusCode { return StatusCode{Code: code} }

// ErrorCode wraps a normalized transport error code such as "DNS_ERROR".
func ErrorCode(code string) StatusCode { return StatusCode{ErrCode: code} }

func (s StatusCode) MarshalJSON() ([]byte, error) {
	if s.ErrCode != "" {
		return json.Marshal(s.ErrCode)
	}
	return json.Marshal(s.Code)
}

func (s *StatusCode) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.ErrCode)
	}
	return json.Unmarshal(data, &s.Code)
}

// RedirectHop is a single step in a traced redirect chain, first hop first.
type RedirectHop struct {
	FromURL        string `json:"fromUrl"`
	HTTPStatus     int    `json:"httpStatus"`
	LocationHeader string `json:"locationHeader"`
	// CrossDomain marks hops whose target leaves the registrable domain of
	// the hop's own URL.
	CrossDomain bool `json:"crossDomain,omitempty"`
}

// ProbeResult is the final outcome of one probe. Produced exactly once per
// input URL and never mutated afterwards.
type ProbeResult struct {
	URL            string            `json:"url"`
	Status         Status            `json:"status"`
	StatusCode     StatusCode        `json:"statusCode"`
	Message        string            `json:"message"`
	ResponseTimeMs int64             `json:"responseTimeMs"`
	RedirectChain  []RedirectHop     `json:"redirectChain,omitempty"`
	SSLValid       *bool             `json:"sslValid"`
	Headers        map[string]string `json:"headers,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
	ErrorDetail    string            `json:"errorDetail,omitempty"`
}

// BatchError pairs a URL with the detail of its failure.
type BatchError struct {
	URL         string `json:"url"`
	ErrorDetail string `json:"errorDetail"`
}

// BatchSummary is derived purely from a batch's result sequence.
// CountsByStatus values always sum to Total.
type BatchSummary struct {
	Total                 int            `json:"total"`
	CountsByStatus        map[Status]int `json:"countsByStatus"`
	AverageResponseTimeMs int64          `json:"averageResponseTimeMs"`
	ErrorList             []BatchError   `json:"errorList,omitempty"`
}
