package sanitize

import (
	"errors"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

var (
	// ErrInvalidURL is returned for input that cannot be parsed as a URL.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrUnsupportedScheme is returned for non-HTTP(S) protocols.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
	// ErrBlockedHost is returned for loopback and private-network hosts.
	ErrBlockedHost = errors.New("host is not allowed")
	// ErrNoValidURLs is returned when no input in a batch survives sanitization.
	ErrNoValidURLs = errors.New("no valid URLs in batch")
)

// blockedHostParts rejects loopback and private-range hosts by substring.
// Deliberately coarse: any hostname merely containing one of these is
// rejected. Kept as-is for compatibility with existing classifications.
var blockedHostParts = []string{
	"localhost",
	"127.0.0.1",
	"0.0.0.0",
	"10.",
	"192.168.",
	"172.",
}

// Normalize trims the raw input, prepends https:// when no HTTP(S) prefix is
// present, and reparses it into a canonical absolute URL. Hostnames are
// lowercased and punycoded, an empty path becomes "/". Normalizing an
// already-normalized URL returns it unchanged.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrInvalidURL
	}
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", ErrInvalidURL
	}
	host := strings.ToLower(u.Hostname())
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}
	if port := u.Port(); port != "" {
		u.Host = host + ":" + port
	} else {
		u.Host = host
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

// Validate rejects normalized URLs whose scheme is not plain HTTP(S) or whose
// hostname contains a blocked loopback/private-network marker.
func Validate(normalized string) error {
	u, err := url.Parse(normalized)
	if err != nil {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrUnsupportedScheme
	}
	host := strings.ToLower(u.Hostname())
	for _, part := range blockedHostParts {
		if strings.Contains(host, part) {
			return ErrBlockedHost
		}
	}
	return nil
}

// URL normalizes and validates one raw input string.
func URL(raw string) (string, error) {
	normalized, err := Normalize(raw)
	if err != nil {
		return "", err
	}
	if err := Validate(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// Batch sanitizes every input, silently dropping rejected ones. It fails with
// ErrNoValidURLs when nothing survives, so an all-invalid batch is rejected
// before any network activity instead of being processed as empty.
func Batch(raws []string) ([]string, error) {
	valid := make([]string, 0, len(raws))
	for _, raw := range raws {
		u, err := URL(raw)
		if err != nil {
			continue
		}
		valid = append(valid, u)
	}
	if len(valid) == 0 {
		return nil, ErrNoValidURLs
	}
	return valid, nil
}
