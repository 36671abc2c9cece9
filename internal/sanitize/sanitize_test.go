package sanitize_test

import (
	"errors"
	"testing"

	"github.com/linkpulse/linkpulse/internal/sanitize"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "bareHost", raw: "example.com", want: "https://example.com/"},
		{name: "whitespace", raw: "  example.com  ", want: "https://example.com/"},
		{name: "keepsHTTP", raw: "http://example.com", want: "http://example.com/"},
		{name: "keepsPath", raw: "https://example.com/a/b?q=1", want: "https://example.com/a/b?q=1"},
		{name: "upperHost", raw: "HTTPS://EXAMPLE.COM/Path", want: "https://example.com/Path"},
		{name: "keepsPort", raw: "example.com:8443/x", want: "https://example.com:8443/x"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := sanitize.Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()
	first, err := sanitize.Normalize("example.com/path")
	if err != nil {
		t.Fatal(err)
	}
	second, err := sanitize.Normalize(first)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("not idempotent: %q -> %q", first, second)
	}
}

func TestNormalizeRejects(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "   ", "https://"} {
		if _, err := sanitize.Normalize(raw); err == nil {
			t.Fatalf("Normalize(%q) should fail", raw)
		}
	}
}

func TestValidateBlockedHosts(t *testing.T) {
	t.Parallel()
	tests := []string{
		"http://localhost/",
		"https://localhost:3000/",
		"http://127.0.0.1/",
		"http://0.0.0.0/",
		"http://10.0.0.5/",
		"https://192.168.1.1/admin",
		"http://172.16.0.1/",
		// substring matching is deliberately over-broad
		"https://my10.example.com/",
	}
	for _, u := range tests {
		u := u
		t.Run(u, func(t *testing.T) {
			if err := sanitize.Validate(u); !errors.Is(err, sanitize.ErrBlockedHost) {
				t.Fatalf("Validate(%q) = %v, want ErrBlockedHost", u, err)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	t.Parallel()
	for _, u := range []string{"https://example.com/", "http://example.org/x"} {
		if err := sanitize.Validate(u); err != nil {
			t.Fatalf("Validate(%q) = %v, want nil", u, err)
		}
	}
}

func TestURL(t *testing.T) {
	t.Parallel()
	got, err := sanitize.URL("example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://example.com/" {
		t.Fatalf("got %q", got)
	}
	if _, err := sanitize.URL("http://10.0.0.5/"); !errors.Is(err, sanitize.ErrBlockedHost) {
		t.Fatalf("expected ErrBlockedHost, got %v", err)
	}
}

func TestBatch(t *testing.T) {
	t.Parallel()

	t.Run("dropsInvalid", func(t *testing.T) {
		urls, err := sanitize.Batch([]string{"example.com", "http://localhost/", "example.org"})
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"https://example.com/", "https://example.org/"}
		if len(urls) != len(want) {
			t.Fatalf("got %d urls, want %d", len(urls), len(want))
		}
		for i := range want {
			if urls[i] != want[i] {
				t.Fatalf("urls[%d] = %q, want %q", i, urls[i], want[i])
			}
		}
	})

	t.Run("noSurvivors", func(t *testing.T) {
		if _, err := sanitize.Batch([]string{"http://10.0.0.5/"}); !errors.Is(err, sanitize.ErrNoValidURLs) {
			t.Fatalf("expected ErrNoValidURLs, got %v", err)
		}
	})
}
