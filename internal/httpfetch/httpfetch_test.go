package httpfetch

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geobasenrn/nrn-go/internal/logging"
)

func TestGetReturnsBodyOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New(logging.Nop())
	body, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("expected body %q, got %q", "ok", body)
	}
}

func TestGetRetriesThenFailsOnPersistentError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(logging.Nop())
	c.MaxRetries = 2
	c.Backoff = 0

	_, err := c.Get(srv.URL)
	if err == nil {
		t.Fatal("expected an error after retries exhausted")
	}
	if attempts != 3 {
		t.Errorf("expected 1 initial attempt + 2 retries = 3 total, got %d", attempts)
	}
}
