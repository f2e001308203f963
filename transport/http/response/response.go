package response

import (
	"net/http"
	"resort/shared/constant"
	"resort/shared/failure"
	"resort/shared/logger"

	"github.com/goccy/go-json"
)

// Data wraps successful payloads as {"data": ...}.
type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error is the body of every non-2xx response. Errors lists field messages
// for validation failures.
type Error struct {
	Error  *string  `json:"error,omitempty"`
	Kind   string   `json:"kind,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError answers with the status carried by err. Anything that is not a
// failure.Failure is logged with its stack and hidden behind a generic message.
func WithError(writer http.ResponseWriter, err error) {
	msg := constant.ResponseErrorInternal

	if failure.IsFailure(err) {
		msg = err.Error()
	} else {
		logger.ErrorWithStack(err)
	}

	write(writer, failure.GetCode(err), Error{
		Error:  &msg,
		Kind:   string(failure.GetKind(err)),
		Errors: failure.GetErrors(err),
	})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		code = http.StatusInternalServerError
		body = []byte(`{"error":"` + constant.ResponseErrorInternal + `"}`)
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
