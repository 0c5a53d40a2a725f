package inference

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for text completion
type Client interface {
	// Complete returns the trimmed answer for prompt.
	// A non-nil error is always a *CompletionError.
	Complete(ctx context.Context, prompt string) (string, error)
}

type ErrorKind string

const (
	ErrorKindTransport         ErrorKind = "transport"
	ErrorKindHTTPStatus        ErrorKind = "http_status"
	ErrorKindMalformedResponse ErrorKind = "malformed_response"
	ErrorKindMissingField      ErrorKind = "missing_field"
	ErrorKindUnknown           ErrorKind = "unknown"
)

// User facing prefixes and messages.
const (
	NetworkErrorPrefix      = "网络请求出错："
	MissingFieldErrorPrefix = "响应解析错误，缺少字段："
	UnknownErrorPrefix      = "未知错误："
	MalformedResponseText   = "抱歉，模型返回格式异常，无法解析回答。"
)

// CompletionError describes why a completion could not produce an answer.
type CompletionError struct {
	Kind ErrorKind
	// Detail is the underlying cause, or the missing key for ErrorKindMissingField.
	Detail string
	Err    error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed (%s): %s", e.Kind, e.Detail)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// Message is the text shown to the user in place of an answer.
func (e *CompletionError) Message() string {
	switch e.Kind {
	case ErrorKindTransport, ErrorKindHTTPStatus:
		return NetworkErrorPrefix + e.Detail
	case ErrorKindMalformedResponse:
		return MalformedResponseText
	case ErrorKindMissingField:
		return MissingFieldErrorPrefix + e.Detail
	default:
		return UnknownErrorPrefix + e.Detail
	}
}

func NewCompletionError(kind ErrorKind, err error) *CompletionError {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &CompletionError{
		Kind:   kind,
		Detail: detail,
		Err:    err,
	}
}

func NewMissingFieldError(field string) *CompletionError {
	return &CompletionError{
		Kind:   ErrorKindMissingField,
		Detail: field,
	}
}

// ErrorMessage converts any error returned by a Client into displayable text.
func ErrorMessage(err error) string {
	var completionErr *CompletionError
	if errors.As(err, &completionErr) {
		return completionErr.Message()
	}
	return UnknownErrorPrefix + err.Error()
}
