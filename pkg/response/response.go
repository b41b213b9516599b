package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error Codes
type ErrCode string

var (
	FAILED_REQUEST ErrCode = "REQUEST_FAILED"
	BAD_REQUEST    ErrCode = "FAILED_TO_DECODE"
	INVALID        ErrCode = "VALIDATION_FAILED"
	NOT_FOUND      ErrCode = "NOT_FOUND"
	LOCKED         ErrCode = "LOCKED"
	CONFLICT       ErrCode = "CONFLICT"
	OVERLAP        ErrCode = "BOOKING_OVERLAP"
	STALE          ErrCode = "STALE_UPDATE"
)

var (
	ErrBadRequest  = errors.New("bad request")
	ErrNotFound    = errors.New("resource not found")
	ErrLocked      = errors.New("resource is locked")
	ErrConflict    = errors.New("conflict")
	ErrOverlap     = errors.New("booking overlaps another booking on the line")
	ErrStale       = errors.New("booking was modified by someone else")
	ErrInvalidDate = errors.New("invalid date")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsg []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsg = append(errMsg, fmt.Sprintf("field '%s' is required", err.Field()))
		case "min":
			errMsg = append(errMsg, fmt.Sprintf("field '%s' must be at least %s", err.Field(), err.Param()))
		case "max":
			errMsg = append(errMsg, fmt.Sprintf("field '%s' must be at most %s", err.Field(), err.Param()))
		default:
			errMsg = append(errMsg, fmt.Sprintf("field '%s' is invalid", err.Field()))
		}
	}

	return Error(string(INVALID), strings.Join(errMsg, ", "))
}
