package usecase

import (
	"errors"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidScore       = "INVALID_SCORE"
	CodeLeadNotFound       = "LEAD_NOT_FOUND"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeClientNotFound     = "CLIENT_NOT_FOUND"
	CodeContactNotFound    = "CONTACT_NOT_FOUND"
	CodeActivityNotFound   = "ACTIVITY_NOT_FOUND"
	CodeTaskNotFound       = "TASK_NOT_FOUND"
	CodeFileNotFound       = "FILE_NOT_FOUND"
	CodeReferenceNotFound  = "REFERENCE_NOT_FOUND"
	CodeEmailExists        = "EMAIL_ALREADY_EXISTS"
	CodeInUse              = "RECORD_IN_USE"
	CodeLeadAlreadyWon     = "LEAD_ALREADY_CONVERTED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeDatabase           = "DATABASE_ERROR"
	CodeStorage            = "STORAGE_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// DomainError is a business failure the caller can act on.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

// DetailString joins the field errors, or falls back to the message.
func (e *DomainError) DetailString() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Details))
	for i, d := range e.Details {
		parts[i] = d.Error()
	}
	return strings.Join(parts, "; ")
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps storage or infrastructure failures.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func invalid(errs ...ValidationError) *DomainError {
	return &DomainError{Kind: KindValidation, Code: CodeValidation, Message: "validation failed", Details: errs}
}

func notFound(code, msg string) *DomainError {
	return &DomainError{Kind: KindNotFound, Code: code, Message: msg}
}

func conflict(code, msg string) *DomainError {
	return &DomainError{Kind: KindConflict, Code: code, Message: msg}
}

func unauthorized(code, msg string) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Code: code, Message: msg}
}

func forbidden(msg string) *DomainError {
	return &DomainError{Kind: KindForbidden, Code: CodeForbidden, Message: msg}
}

func dbError(msg string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeDatabase, Message: msg, Err: err}
}

// repoError maps a repository failure: the sentinel becomes a not-found
// domain error, anything else a database error.
func repoError(err, sentinel error, code, action string) error {
	if errors.Is(err, sentinel) {
		return notFound(code, sentinel.Error())
	}
	if errors.Is(err, entity.ErrReferenceNotFound) {
		return &DomainError{Kind: KindValidation, Code: CodeReferenceNotFound, Message: entity.ErrReferenceNotFound.Error()}
	}
	if errors.Is(err, entity.ErrInUse) {
		return conflict(CodeInUse, entity.ErrInUse.Error())
	}
	return dbError(action, err)
}
