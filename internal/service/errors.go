package service

import (
	"context"
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeTimeout  ErrorCode = "TIMEOUT"
	CodeCanceled ErrorCode = "CANCELED"
	CodeInternal ErrorCode = "INTERNAL"
)

type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewInternal(msg string, err error) *AppError {
	return &AppError{Code: CodeInternal, Message: msg, Err: err}
}

func IsAppErrorCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &AppError{Code: CodeTimeout, Message: "request timed out", Err: err}
	case errors.Is(err, context.Canceled):
		return &AppError{Code: CodeCanceled, Message: "request canceled", Err: err}
	}
	return NewInternal("request failed", err)
}
