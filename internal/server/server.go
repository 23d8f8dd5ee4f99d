package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/faizp/tweets/backend/go-graphql/graph"
	"github.com/faizp/tweets/backend/go-graphql/internal/config"
	"github.com/faizp/tweets/backend/go-graphql/internal/graphql/middleware"
	platformlogger "github.com/faizp/tweets/backend/go-graphql/internal/platform/logger"
	"github.com/faizp/tweets/backend/go-graphql/internal/platform/metrics"
	"github.com/faizp/tweets/backend/go-graphql/internal/service"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

type Pinger interface {
	Ping(context.Context) error
}

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Config  config.Config
	Log     *platformlogger.Logger
	Service *service.Service
	Metrics *metrics.Metrics
	Health  Pinger
}

// NewGraphQLHandler serves the executable schema over HTTP.
func NewGraphQLHandler(deps Deps) *handler.Server {
	resolver := &graph.Resolver{Service: deps.Service}
	srv := handler.New(graph.NewExecutableSchema(graph.Config{Resolvers: resolver}))
	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})

	if deps.Config.IntrospectionEnabled {
		srv.Use(extension.Introspection{})
	}
	srv.Use(extension.FixedComplexityLimit(deps.Config.ComplexityLimit))
	if deps.Metrics != nil {
		srv.Use(middleware.NewMetrics(deps.Metrics))
	}

	srv.SetErrorPresenter(func(ctx context.Context, err error) *gqlerror.Error {
		presented := graphql.DefaultErrorPresenter(ctx, err)
		if presented.Extensions == nil {
			presented.Extensions = make(map[string]interface{})
		}
		if _, ok := presented.Extensions["code"]; !ok {
			presented.Extensions["code"] = string(service.CodeInternal)
		}
		if reqID := middleware.RequestIDFromContext(ctx); reqID != "" {
			presented.Extensions["request_id"] = reqID
		}
		return presented
	})
	srv.SetRecoverFunc(func(ctx context.Context, err interface{}) error {
		deps.Log.Error("resolver_panic", "panic", err, "request_id", middleware.RequestIDFromContext(ctx))
		return &gqlerror.Error{
			Message:    "internal server error",
			Extensions: map[string]interface{}{"code": string(service.CodeInternal)},
		}
	})

	return srv
}

// NewHandler routes the playground, the GraphQL endpoint, health and metrics.
func NewHandler(deps Deps) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", playground.Handler("Tweets GraphQL", "/query"))
	mux.Handle("/query", chain(
		NewGraphQLHandler(deps),
		middleware.Timeout(deps.Config.RequestTimeout),
		middleware.RequestID,
		middleware.Logging(deps.Log),
	))
	mux.Handle("/healthz", healthHandler(deps.Health, deps.Log))
	if deps.Metrics != nil {
		mux.Handle("/metrics", deps.Metrics.Handler())
	}
	return mux
}

func chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func healthHandler(p Pinger, logger *platformlogger.Logger) http.Handler {
	type response struct {
		Status string `json:"status"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := p.Ping(ctx); err != nil {
			logger.Error("health_check_failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(response{Status: "unhealthy"})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response{Status: "ok"})
	})
}
