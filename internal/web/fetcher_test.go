package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStripHTML(t *testing.T) {
	in := `<html><head><title>Ignore</title></head><body>
		<nav>Home | Products</nav>
		<script>var x = 1;</script>
		<style>.a { color: red; }</style>
		<p>F-500 Encapsulator &amp; Agent</p>
		<footer>Copyright</footer>
	</body></html>`

	got := stripHTML(in)
	if got != "F-500 Encapsulator & Agent" {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestContextForMatchesProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<body><p>HydroLock vapor mitigation details.</p></body>"))
	}))
	defer srv.Close()

	f := NewFetcher()
	orig := productPages
	productPages = []productPage{{"hydrolock", srv.URL}}
	defer func() { productPages = orig }()

	got := f.ContextFor(context.Background(), "Tell me about HydroLock dosing")
	if !strings.Contains(got, "vapor mitigation") {
		t.Errorf("expected page text, got %q", got)
	}
}

func TestContextForNoMatch(t *testing.T) {
	f := NewFetcher()
	if got := f.ContextFor(context.Background(), "what is the weather"); got != "" {
		t.Errorf("expected empty context, got %q", got)
	}
}

func TestContextForFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher()
	orig := productPages
	productPages = []productPage{{"pinnacle", srv.URL}}
	defer func() { productPages = orig }()

	if got := f.ContextFor(context.Background(), "pinnacle foam specs"); got != "" {
		t.Errorf("expected empty context on fetch failure, got %q", got)
	}
}

func TestContextForTruncates(t *testing.T) {
	long := strings.Repeat("foam ", 500)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<body>" + long + "</body>"))
	}))
	defer srv.Close()

	f := NewFetcher()
	orig := productPages
	productPages = []productPage{{"f-500", srv.URL}}
	defer func() { productPages = orig }()

	got := f.ContextFor(context.Background(), "f-500 data sheet")
	if len(got) > maxPageChars {
		t.Errorf("expected at most %d chars, got %d", maxPageChars, len(got))
	}
	if got == "" {
		t.Error("expected truncated text, got empty string")
	}
}
