package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	platformlogger "github.com/faizp/tweets/backend/go-graphql/internal/platform/logger"
	"github.com/google/uuid"
)

func TestRequestIDKeepsValidHeader(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/query", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "req-123" {
		t.Fatalf("request id in context = %q, expected %q", seen, "req-123")
	}
	if got := rec.Header().Get(RequestIDHeader); got != "req-123" {
		t.Fatalf("response header = %q, expected %q", got, "req-123")
	}
}

func TestRequestIDReplacesInvalidHeader(t *testing.T) {
	tests := []string{"", "has space", strings.Repeat("a", maxRequestIDLen+1)}

	for _, in := range tests {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		if in != "" {
			req.Header.Set(RequestIDHeader, in)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)

		if _, err := uuid.Parse(seen); err != nil {
			t.Fatalf("header %q: request id %q is not a uuid", in, seen)
		}
	}
}

func TestTimeoutSetsDeadline(t *testing.T) {
	var deadline time.Time
	var ok bool
	h := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !ok {
		t.Fatal("expected request context to carry a deadline")
	}
	if time.Until(deadline) > time.Second {
		t.Fatalf("deadline %s is further than the configured timeout", deadline)
	}
}

func TestLoggingPassesThrough(t *testing.T) {
	h := Logging(platformlogger.NewTest(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req = req.WithContext(WithRequestID(context.Background(), "abc"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusTeapot)
	}
}

func TestLoggingKeepsErrorStatus(t *testing.T) {
	h := Logging(platformlogger.NewTest(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/query", nil))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusUnprocessableEntity)
	}
}
