package entity

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrContactNotFound    = errors.New("contact not found")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrFileNotFound       = errors.New("file not found")
	ErrTaskNotFound       = errors.New("task not found")

	// ErrReferenceNotFound is returned when a foreign key points at a missing row.
	ErrReferenceNotFound = errors.New("referenced record does not exist")
	// ErrInUse is returned when a delete is blocked by rows that still point at the record.
	ErrInUse = errors.New("record is still referenced")
)
