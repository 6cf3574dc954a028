package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type errorEnvelope struct {
	Error string `json:"error"`
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		status     int
		wantStatus int
		wantBody   string
		wantErr    bool
	}{
		{
			name:       "object",
			data:       map[string]string{"task_id": "a1b2c3d4"},
			status:     http.StatusOK,
			wantStatus: http.StatusOK,
			wantBody:   `{"task_id":"a1b2c3d4"}`,
		},
		{
			name:       "error envelope",
			data:       errorEnvelope{Error: "Task not found."},
			status:     http.StatusNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Task not found."}`,
		},
		{
			name:       "nil",
			data:       nil,
			status:     http.StatusOK,
			wantStatus: http.StatusOK,
			wantBody:   `null`,
		},
		{
			name:       "not serializable",
			data:       make(chan int),
			status:     http.StatusOK,
			wantStatus: http.StatusInternalServerError,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if n != len(tt.wantBody) {
					t.Errorf("expected %d bytes written, got %d", len(tt.wantBody), n)
				}
				if got := w.Body.String(); got != tt.wantBody {
					t.Errorf("expected body %s, got %s", tt.wantBody, got)
				}
				if ct := w.Header().Get("Content-Type"); ct != "application/json" {
					t.Errorf("expected Content-Type application/json, got %q", ct)
				}
				if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
					t.Errorf("expected Cache-Control no-store, got %q", cc)
				}
			}
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
