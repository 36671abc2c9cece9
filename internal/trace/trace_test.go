package trace_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linkpulse/linkpulse/internal/trace"
)

func setupServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/302", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/301", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/302", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	})
	mux.HandleFunc("/nolocation", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("/deep/", func(w http.ResponseWriter, r *http.Request) {
		var n int
		_, _ = fmt.Sscanf(r.URL.Path, "/deep/%d", &n)
		http.Redirect(w, r, fmt.Sprintf("/deep/%d", n+1), http.StatusFound)
	})
	return httptest.NewServer(mux)
}

func TestTraceBasic(t *testing.T) {
	srv := setupServer()
	defer srv.Close()

	hops := trace.New().Trace(context.Background(), srv.URL+"/302")
	if len(hops) != 1 {
		t.Fatalf("expected 1 hop, got %d", len(hops))
	}
	if hops[0].HTTPStatus != http.StatusFound {
		t.Fatalf("hop status = %d, want 302", hops[0].HTTPStatus)
	}
	if hops[0].FromURL != srv.URL+"/302" {
		t.Fatalf("hop from = %q", hops[0].FromURL)
	}
	if hops[0].LocationHeader != "/final" {
		t.Fatalf("hop location = %q", hops[0].LocationHeader)
	}
}

func TestTraceMultiHop(t *testing.T) {
	srv := setupServer()
	defer srv.Close()

	hops := trace.New().Trace(context.Background(), srv.URL+"/301")
	if len(hops) != 2 {
		t.Fatalf("expected 2 hops, got %d", len(hops))
	}
	if hops[0].HTTPStatus != http.StatusMovedPermanently || hops[1].HTTPStatus != http.StatusFound {
		t.Fatalf("hop statuses = %d, %d", hops[0].HTTPStatus, hops[1].HTTPStatus)
	}
}

func TestTraceStops(t *testing.T) {
	srv := setupServer()
	defer srv.Close()

	t.Run("nonRedirect", func(t *testing.T) {
		if hops := trace.New().Trace(context.Background(), srv.URL+"/final"); hops != nil {
			t.Fatalf("expected nil, got %d hops", len(hops))
		}
	})

	t.Run("missingLocation", func(t *testing.T) {
		if hops := trace.New().Trace(context.Background(), srv.URL+"/nolocation"); hops != nil {
			t.Fatalf("expected nil, got %d hops", len(hops))
		}
	})

	t.Run("loop", func(t *testing.T) {
		hops := trace.New().Trace(context.Background(), srv.URL+"/loop")
		if len(hops) != 1 {
			t.Fatalf("expected 1 hop before loop stop, got %d", len(hops))
		}
	})

	t.Run("hopBudget", func(t *testing.T) {
		hops := trace.New().Trace(context.Background(), srv.URL+"/deep/0")
		if len(hops) != 5 {
			t.Fatalf("expected 5 hops, got %d", len(hops))
		}
	})

	t.Run("requestFailure", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		dead.Close()
		if hops := trace.New().Trace(context.Background(), dead.URL); hops != nil {
			t.Fatalf("expected nil on failure, got %d hops", len(hops))
		}
	})
}
