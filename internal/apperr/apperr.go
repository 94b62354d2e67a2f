// Package apperr holds the error kinds surfaced at the HTTP edge and the
// single place where they are turned into JSON responses.
package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/logger"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/validation"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuth
	KindUpstream
	KindPayment
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindUpstream:
		return "upstream"
	case KindPayment:
		return "payment"
	default:
		return "internal"
	}
}

const internalMessage = "Server error"

type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  []validation.FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

func ValidationFields(msg string, fields []validation.FieldError) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg, Fields: fields}
}

// Conflict keeps the existing 400 convention for duplicate unique fields.
func Conflict(msg string, err error) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusBadRequest, Message: msg, Err: err}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

// Auth is 400 for rejected credentials and 401 for missing or bad tokens.
func Auth(status int, msg string, err error) *Error {
	return &Error{Kind: KindAuth, Status: status, Message: msg, Err: err}
}

func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// Payment carries the provider message through to the caller.
func Payment(msg string, err error) *Error {
	return &Error{Kind: KindPayment, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: internalMessage, Err: err}
}

// From returns err as *Error, wrapping anything unknown as Internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Respond writes {key: message} with the error's status. Causes are logged
// server side only.
func Respond(c *gin.Context, key string, err error) {
	e := From(err)

	fields := map[string]any{
		"kind":   e.Kind.String(),
		"status": e.Status,
		"path":   c.Request.URL.Path,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}

	if e.Status >= http.StatusInternalServerError {
		logger.Error(e.Message, fields)
	} else {
		logger.Info(e.Message, fields)
	}

	c.AbortWithStatusJSON(e.Status, gin.H{key: e.Message})
}
