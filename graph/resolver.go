package graph

//go:generate go run github.com/99designs/gqlgen generate

import "github.com/faizp/tweets/backend/go-graphql/internal/service"

// Resolver wires GraphQL resolvers to application services.
type Resolver struct {
	Service *service.Service
}
