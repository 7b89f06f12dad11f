package models

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrTourNotFound     = errors.New("tour not found")
	ErrInvalidID        = errors.New("invalid id")
	ErrValidation       = errors.New("validation error")
	ErrDuplicate        = errors.New("review already exists")
	ErrForbidden        = errors.New("forbidden")
	ErrPermissionDenied = errors.New("permission denied")
)
