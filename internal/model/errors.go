package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound               = errors.New("not-found")
	ErrAccessDenied           = errors.New("access-denied")
	ErrNotOwner               = fmt.Errorf("%w: not-owner", ErrAccessDenied)
	ErrPermissionInsufficient = errors.New(string(ReasonDownloadNotPermitted))
	ErrValidation             = errors.New("validation-error")
	ErrDependencyFailure      = errors.New("dependency-failure")
	ErrCredentialIssuance     = fmt.Errorf("%w: issuance-failed", ErrDependencyFailure)
	ErrConflict               = errors.New("conflict")
	ErrRateLimited            = errors.New("rate-limited")
	ErrUnauthorized           = errors.New("unauthorized")
)

const (
	CodeOwnerSelfShare         = "owner-self-share"
	CodeInvalidPermission      = "invalid-permission"
	CodeInvalidRequest         = "invalid-request"
	CodeFileTooLarge           = "file-too-large"
	CodeUnsupportedContentType = "unsupported-content-type"
	CodeAlreadyMember          = "already-member"
	CodeNotMember              = "not-member"
)

// ValidationError : ошибка входных данных с указанием поля и значений
type ValidationError struct {
	Code   string
	Field  string
	Values []string
}

func NewValidationError(code, field string, values ...string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Values: values}
}

func (e *ValidationError) Error() string {
	if len(e.Values) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Field)
	}
	return fmt.Sprintf("%s: %s [%s]", e.Code, e.Field, strings.Join(e.Values, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError : сущность, на которую ссылается запрос, не существует
func NotFoundError(entity, key string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, key)
}
