package auth

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

// ===== Error model (same shape as attendance/teacher) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string     { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrUnauthenticated(msg string) *APIError {
	return &APIError{Code: CodeUnauthenticated, Message: msg}
}
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeUnauthenticated:
			return 401
		case CodeForbidden:
			return 403
		default:
			return 500
		}
	}
	return 500
}

func errorBody(code Code, msg string) gin.H {
	return gin.H{"code": code, "error": msg}
}

func errorFromErr(err error) gin.H {
	var api *APIError
	if errors.As(err, &api) {
		return errorBody(api.Code, api.Message)
	}
	return errorBody(CodeInternal, "Terjadi kesalahan server")
}
