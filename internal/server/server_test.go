package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/99designs/gqlgen/graphql/introspection"
	"github.com/faizp/tweets/backend/go-graphql/internal/config"
	"github.com/faizp/tweets/backend/go-graphql/internal/graphql/middleware"
	platformlogger "github.com/faizp/tweets/backend/go-graphql/internal/platform/logger"
	"github.com/faizp/tweets/backend/go-graphql/internal/platform/metrics"
	"github.com/faizp/tweets/backend/go-graphql/internal/service"
	"github.com/faizp/tweets/backend/go-graphql/internal/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	log := platformlogger.NewTest(t)
	st := store.NewSeeded()
	return Deps{
		Config: config.Config{
			AppEnv:               "test",
			HTTPPort:             "0",
			RequestTimeout:       5 * time.Second,
			ComplexityLimit:      200,
			IntrospectionEnabled: true,
		},
		Log:     log,
		Service: service.New(st, log),
		Metrics: metrics.New(),
		Health:  st,
	}
}

type gqlResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func postQuery(t *testing.T, h http.Handler, query string, header http.Header) (*httptest.ResponseRecorder, gqlResponse) {
	t.Helper()
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v[0])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp gqlResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

func TestQueryEndpoint(t *testing.T) {
	deps := newTestDeps(t)
	h := NewHandler(deps)

	rec, resp := postQuery(t, h, `{ allUsers { fullName } }`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatal("expected X-Request-ID response header")
	}
	users, _ := resp.Data["allUsers"].([]interface{})
	if len(users) != 2 {
		t.Fatalf("allUsers = %#v", resp.Data["allUsers"])
	}
	if got := users[0].(map[string]interface{})["fullName"]; got != "nico las" {
		t.Fatalf("allUsers[0].fullName = %v, want nico las", got)
	}

	if got := testutil.ToFloat64(deps.Metrics.OperationsTotal.WithLabelValues("query", "ok")); got != 1 {
		t.Fatalf("graphql_operations_total{query,ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(deps.Metrics.ResolverCalls.WithLabelValues("User", "fullName")); got != 2 {
		t.Fatalf("graphql_resolver_calls_total{User,fullName} = %v, want 2", got)
	}
}

func TestErrorPresenterAddsCodeAndRequestID(t *testing.T) {
	deps := newTestDeps(t)
	deps.Config.IntrospectionEnabled = false
	h := NewHandler(deps)

	_, resp := postQuery(t, h, `{ __schema { queryType { name } } }`, http.Header{
		middleware.RequestIDHeader: []string{"req-42"},
	})
	if len(resp.Errors) != 1 {
		t.Fatalf("errors = %+v, want one error", resp.Errors)
	}
	ext := resp.Errors[0].Extensions
	if ext["code"] != string(service.CodeInternal) {
		t.Errorf("extensions.code = %v, want %s", ext["code"], service.CodeInternal)
	}
	if ext["request_id"] != "req-42" {
		t.Errorf("extensions.request_id = %v, want req-42", ext["request_id"])
	}
	if got := testutil.ToFloat64(deps.Metrics.OperationsTotal.WithLabelValues("query", "error")); got != 1 {
		t.Fatalf("graphql_operations_total{query,error} = %v, want 1", got)
	}
}

func TestPlaygroundIntrospectionQuery(t *testing.T) {
	h := NewHandler(newTestDeps(t))

	rec, resp := postQuery(t, h, introspection.Query, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(resp.Errors) != 0 {
		t.Fatalf("errors = %+v, want none", resp.Errors)
	}
	schema, ok := resp.Data["__schema"].(map[string]interface{})
	if !ok {
		t.Fatalf("data = %+v, want __schema", resp.Data)
	}
	if qt, _ := schema["queryType"].(map[string]interface{}); qt["name"] != "Query" {
		t.Fatalf("queryType = %v, want Query", schema["queryType"])
	}
}

func TestComplexityLimit(t *testing.T) {
	deps := newTestDeps(t)
	deps.Config.ComplexityLimit = 2
	h := NewHandler(deps)

	_, resp := postQuery(t, h, `{ allTweets { id author { id } } }`, nil)
	if len(resp.Errors) == 0 || !strings.Contains(resp.Errors[0].Message, "exceeds the limit") {
		t.Fatalf("errors = %+v, want complexity error", resp.Errors)
	}
}

func TestMutationEndpoint(t *testing.T) {
	h := NewHandler(newTestDeps(t))

	_, resp := postQuery(t, h, `mutation { postTweet(text: "gm", userId: "2") { id text author { firstName } } }`, nil)
	if len(resp.Errors) != 0 {
		t.Fatalf("errors = %+v", resp.Errors)
	}
	posted := resp.Data["postTweet"].(map[string]interface{})
	if posted["id"] != "3" || posted["text"] != "gm" {
		t.Fatalf("postTweet = %#v", posted)
	}

	_, resp = postQuery(t, h, `mutation { deleteTweet(id: "1") }`, nil)
	if resp.Data["deleteTweet"] != true {
		t.Fatalf("deleteTweet = %#v, want true", resp.Data["deleteTweet"])
	}
}

func TestHealthz(t *testing.T) {
	deps := newTestDeps(t)

	rec := httptest.NewRecorder()
	NewHandler(deps).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("healthz = %d %s", rec.Code, rec.Body.String())
	}

	deps.Health = pingFunc(func(context.Context) error { return errors.New("down") })
	rec = httptest.NewRecorder()
	NewHandler(deps).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), "unhealthy") {
		t.Fatalf("healthz = %d %s", rec.Code, rec.Body.String())
	}
}

func TestPlaygroundAndMetricsRoutes(t *testing.T) {
	h := NewHandler(newTestDeps(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Tweets GraphQL") {
		t.Fatalf("playground = %d", rec.Code)
	}

	postQuery(t, h, `{ allTweets { id } }`, nil)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "graphql_operations_total") {
		t.Fatalf("metrics = %d %s", rec.Code, rec.Body.String())
	}
}
