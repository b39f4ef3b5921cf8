package practicum

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_FetchStatuses_Success(t *testing.T) {
	t.Parallel()

	type gotReq struct {
		Method   string
		Auth     string
		FromDate string
	}
	var captured gotReq

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Method = r.Method
		captured.Auth = r.Header.Get("Authorization")
		captured.FromDate = r.URL.Query().Get("from_date")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"homeworks": [], "current_date": 1700000000}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token", 5*time.Second)

	raw, err := c.FetchStatuses(context.Background(), 1690000000)
	if err != nil {
		t.Fatalf("FetchStatuses() error: %v", err)
	}
	if string(raw) != `{"homeworks": [], "current_date": 1700000000}` {
		t.Fatalf("unexpected body: %s", raw)
	}

	if captured.Method != http.MethodGet {
		t.Fatalf("expected method GET, got %q", captured.Method)
	}
	if captured.Auth != "OAuth secret-token" {
		t.Fatalf("expected OAuth authorization header, got %q", captured.Auth)
	}
	if captured.FromDate != "1690000000" {
		t.Fatalf("expected from_date 1690000000, got %q", captured.FromDate)
	}
}

func TestClient_FetchStatuses_NonOkStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token", 5*time.Second)

	_, err := c.FetchStatuses(context.Background(), 0)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, ErrBadStatusCode) {
		t.Fatalf("expected ErrBadStatusCode, got: %v", err)
	}
}

func TestClient_FetchStatuses_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("THIS IS NOT JSON"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token", 5*time.Second)

	_, err := c.FetchStatuses(context.Background(), 0)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got: %v", err)
	}
}

func TestClient_FetchStatuses_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Connection refused from here on.

	c := NewClient(srv.URL, "secret-token", 5*time.Second)

	_, err := c.FetchStatuses(context.Background(), 0)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got: %v", err)
	}
}

func TestClient_FetchStatuses_TimeoutIsTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"homeworks": [], "current_date": 1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token", 20*time.Millisecond)

	_, err := c.FetchStatuses(context.Background(), 0)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed on timeout, got: %v", err)
	}
}
