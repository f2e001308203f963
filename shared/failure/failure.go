// Package failure is the typed error taxonomy returned by services. Handlers
// turn a Failure into its HTTP status; any other error is answered as a 500
// with a generic message.
package failure

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind names the failure for clients that need more than the status code,
// e.g. telling an illegal status change apart from a malformed request.
type Kind string

const (
	KindValidation           Kind = "validation_error"
	KindBadRequest           Kind = "bad_request"
	KindInvalidTransition    Kind = "invalid_transition"
	KindAuthenticationFailed Kind = "authentication_failed"
	KindForbidden            Kind = "forbidden"
	KindNotFound             Kind = "not_found"
	KindServerError          Kind = "server_error"
)

// Failure carries an HTTP status code and a client-safe message. Errors holds
// one message per violated field for validation failures.
type Failure struct {
	Code    int      `json:"code"`
	Kind    Kind     `json:"kind"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

var (
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "insufficient privilege"}
	ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "insufficient privilege: this operation is restricted to super admins"}
	LoginRequiredError      = &Failure{Code: http.StatusUnauthorized, Kind: KindAuthenticationFailed, Message: "login required"}
	InvalidCredentialsError = &Failure{Code: http.StatusUnauthorized, Kind: KindAuthenticationFailed, Message: "invalid credentials"}
)

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest wraps err as a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: err.Error()}
}

func BadRequestFromString(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: msg}
}

// Validation returns nil for no messages, otherwise a 400 listing each one.
func Validation(messages []string) error {
	if len(messages) == 0 {
		return nil
	}

	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: strings.Join(messages, "; "),
		Errors:  messages,
	}
}

// InvalidTransition rejects a status change the entity's lifecycle does not allow.
func InvalidTransition(entity, from, to string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("invalid %s status transition from %s to %s", entity, from, to),
	}
}

func Unauthorized(msg string) error {
	return &Failure{Code: http.StatusUnauthorized, Kind: KindAuthenticationFailed, Message: msg}
}

func Forbidden(msg string) error {
	return &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) error {
	return &Failure{Code: http.StatusNotFound, Kind: KindNotFound, Message: msg}
}

// GetCode returns the status carried by err, 500 when it is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the kind carried by err, KindServerError when it is not a Failure.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindServerError
}

func GetErrors(err error) []string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Errors
	}

	return nil
}

func IsFailure(err error) bool {
	var fail *Failure

	return errors.As(err, &fail)
}
