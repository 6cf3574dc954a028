package utils

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewHTTPClient_Config(t *testing.T) {
	client := NewHTTPClient("http://localhost:10000", 3*time.Second)

	if client == nil || client.Client == nil {
		t.Fatal("expected non-nil client")
	}
	if client.BaseURL != "http://localhost:10000" {
		t.Errorf("expected base url to be set, got %q", client.BaseURL)
	}
	if client.RetryCount != clientRetryCount {
		t.Errorf("expected retry count %d, got %d", clientRetryCount, client.RetryCount)
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("http://a", 0)
	client2 := NewHTTPClient("http://b", 0)

	if client1.Client == client2.Client {
		t.Fatal("expected distinct *resty.Client instances")
	}
}

func TestHTTPClient_RetriesGetOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second)
	client.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(time.Millisecond)

	resp, err := client.R().Get("/api/status/a1b2c3d4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("expected 200 after retry, got %d", resp.StatusCode())
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestHTTPClient_NoRetry(t *testing.T) {
	tests := []struct {
		name   string
		method string
		status int
	}{
		{"post is not retried", http.MethodPost, http.StatusBadGateway},
		{"busy server is not retried", http.MethodGet, http.StatusServiceUnavailable},
		{"client error is not retried", http.MethodGet, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := NewHTTPClient(srv.URL, time.Second)
			client.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(time.Millisecond)

			resp, err := client.R().Execute(tt.method, "/api/download")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.StatusCode() != tt.status {
				t.Errorf("expected %d, got %d", tt.status, resp.StatusCode())
			}
			if calls.Load() != 1 {
				t.Errorf("expected a single call, got %d", calls.Load())
			}
		})
	}
}
