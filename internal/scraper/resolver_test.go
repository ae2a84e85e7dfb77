package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// newTestResolver builds a resolver with no politeness delay so redirect
// chains run instantly under test.
func newTestResolver() *LinkResolver {
	r := NewLinkResolver()
	r.delay = 0
	return r
}

type countingTransport struct {
	calls int32
	next  http.RoundTripper
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	atomic.AddInt32(&t.calls, 1)
	return t.next.RoundTrip(req)
}

func TestResolveEmptyInput(t *testing.T) {
	r := newTestResolver()
	ct := &countingTransport{next: http.DefaultTransport}
	r.client.Transport = ct

	got := r.Resolve(context.Background(), "")
	if got != "" {
		t.Errorf("Resolve(\"\") = %q, want empty string", got)
	}
	if n := atomic.LoadInt32(&ct.calls); n != 0 {
		t.Errorf("Resolve(\"\") made %d network calls, want 0", n)
	}
}

func TestResolveStripsTrackingParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := newTestResolver()
	raw := srv.URL + "/page?ref=producthunt&utm_source=x&foo=bar&utm_campaign=launch&page=2&foo=baz"
	got := r.Resolve(context.Background(), raw)

	want := srv.URL + "/page?foo=bar&page=2"
	if got != want {
		t.Errorf("Resolve(%q) = %q, want %q", raw, got, want)
	}
}

func TestResolveFollowsRedirectChain(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/start", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, srv.URL+"/middle", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/middle", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, srv.URL+"/final?utm_medium=social&q=1", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r := newTestResolver()
	got := r.Resolve(context.Background(), srv.URL+"/start")
	want := srv.URL + "/final?q=1"
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolveRelativeLocation(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/r", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Location", "/landed")
		w.WriteHeader(http.StatusSeeOther)
	})
	mux.HandleFunc("/landed", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r := newTestResolver()
	got := r.Resolve(context.Background(), srv.URL+"/r")
	if want := srv.URL + "/landed"; got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolveHopBound(t *testing.T) {
	var hits int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		w.Header().Set("Location", fmt.Sprintf("%s/hop%d", srv.URL, n))
		w.WriteHeader(http.StatusMovedPermanently)
	}))
	defer srv.Close()

	r := newTestResolver()
	got := r.Resolve(context.Background(), srv.URL+"/hop0")

	if n := atomic.LoadInt32(&hits); n != 5 {
		t.Errorf("resolver made %d requests, want exactly 5 (hop bound)", n)
	}
	if want := srv.URL + "/hop5"; got != want {
		t.Errorf("Resolve stopped at %q, want %q", got, want)
	}
}

func TestResolveTransportFailureReturnsOriginal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
	srv.Close() // connection refused from here on

	r := newTestResolver()
	raw := srv.URL + "/gone?utm_source=x"
	if got := r.Resolve(context.Background(), raw); got != raw {
		t.Errorf("Resolve on dead server = %q, want original %q", got, raw)
	}
}

func TestStripTracking(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no query", "https://example.com/path", "https://example.com/path"},
		{"only tracking", "https://example.com/?ref=ph&utm_term=a", "https://example.com/"},
		{"mixed order preserved", "https://example.com/?b=2&ref=x&a=1", "https://example.com/?b=2&a=1"},
		{"first value wins", "https://example.com/?k=first&k=second", "https://example.com/?k=first"},
		{"fragment kept", "https://example.com/p?utm_source=x&q=1#sec", "https://example.com/p?q=1#sec"},
		{"unparseable passthrough", "://not-a-url?ref=x", "://not-a-url?ref=x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripTracking(tt.in); got != tt.want {
				t.Errorf("stripTracking(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
