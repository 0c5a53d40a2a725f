package inference

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletionError_Message(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")

	tests := []struct {
		name string
		err  *CompletionError
		want string
	}{
		{
			name: "transport",
			err:  NewCompletionError(ErrorKindTransport, cause),
			want: "网络请求出错：dial tcp: i/o timeout",
		},
		{
			name: "http status",
			err:  NewCompletionError(ErrorKindHTTPStatus, errors.New("response error 401: unauthorized")),
			want: "网络请求出错：response error 401: unauthorized",
		},
		{
			name: "malformed response",
			err:  NewCompletionError(ErrorKindMalformedResponse, errors.New("output is missing")),
			want: "抱歉，模型返回格式异常，无法解析回答。",
		},
		{
			name: "missing field",
			err:  NewMissingFieldError("content"),
			want: "响应解析错误，缺少字段：content",
		},
		{
			name: "unknown",
			err:  NewCompletionError(ErrorKindUnknown, errors.New("boom")),
			want: "未知错误：boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Message())
		})
	}
}

func TestCompletionError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := fmt.Errorf("wrapped > %w", NewCompletionError(ErrorKindTransport, cause))

	var completionErr *CompletionError
	assert.ErrorAs(t, err, &completionErr)
	assert.Equal(t, ErrorKindTransport, completionErr.Kind)
	assert.ErrorIs(t, err, cause)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "响应解析错误，缺少字段：message", ErrorMessage(NewMissingFieldError("message")))
	assert.Equal(t, "未知错误：plain", ErrorMessage(errors.New("plain")))
}
