// Package errs 定义各服务共享的错误分类与 HTTP 状态码映射
package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误分类
type Kind string

const (
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindNotFound        Kind = "NOT_FOUND"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindTimeout         Kind = "TIMEOUT"
	KindInternal        Kind = "INTERNAL"
)

// Error 携带分类信息的错误
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New 创建指定分类的错误
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf 创建指定分类的格式化错误
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误并赋予分类
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf 提取错误分类，超时错误单独识别，未分类的一律视为 Internal
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindInternal
}

func IsInvalidArgument(err error) bool { return KindOf(err) == KindInvalidArgument }
func IsNotFound(err error) bool        { return KindOf(err) == KindNotFound }
func IsUnauthorized(err error) bool    { return KindOf(err) == KindUnauthorized }
func IsTimeout(err error) bool         { return KindOf(err) == KindTimeout }

// HTTPStatus 将错误分类映射为 HTTP 状态码
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
