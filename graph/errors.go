package graph

import (
	"errors"

	"github.com/faizp/tweets/backend/go-graphql/internal/service"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// asGraphQLError exposes the message and code of service errors only; any
// other error is reported as an internal failure.
func asGraphQLError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *service.AppError
	if errors.As(err, &appErr) {
		return codedError(appErr.Code, appErr.Message)
	}
	return codedError(service.CodeInternal, "internal server error")
}

func codedError(code service.ErrorCode, msg string) *gqlerror.Error {
	return &gqlerror.Error{
		Message:    msg,
		Extensions: map[string]interface{}{"code": string(code)},
	}
}
