// Package validate 封装 go-playground/validator 的单例实例，配置与 HTTP 请求共用。
package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/rushteam/outfit/core"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// FieldError 是单个字段的校验失败。
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
	Value any    `json:"value,omitempty"`
}

func (e FieldError) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: failed %s=%s (got %v)", e.Field, e.Tag, e.Param, e.Value)
	}
	return fmt.Sprintf("%s: failed %s (got %v)", e.Field, e.Tag, e.Value)
}

// Error 汇总一次校验的全部字段错误。
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.String())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Get 返回单例 validator，并发安全。
func Get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance
}

// Struct 校验结构体。失败时返回 INVALID_INPUT 领域错误，底层为 *Error。
func Struct(module string, s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return core.WrapDomainError(module, core.ErrorCodeInvalidInput, module+": invalid input", err)
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Namespace(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	return core.WrapDomainError(module, core.ErrorCodeInvalidInput, module+": invalid input", out)
}

// Fields 从错误链中取出字段错误，没有时返回 nil。
func Fields(err error) []FieldError {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
