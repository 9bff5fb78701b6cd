package util

import (
	"errors"
	"strings"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrUnauthorized   = errors.New("invalid credentials")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

const MsgExactlyOneCorrectOption = "Each question must have exactly one correct option"

// NotFoundError 引用的实体不存在
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ValidationError 字段约束不满足，Errors 列出全部违规项
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidation(messages ...string) error {
	return &ValidationError{Errors: messages}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
