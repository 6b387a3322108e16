package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidState      = errors.New("invalid job state")
	ErrEmptyInput        = errors.New("empty input")
	ErrEmptyResult       = errors.New("empty translation result")
	ErrTranslationFailed = errors.New("translation failed")
	ErrProviderFailure   = errors.New("provider failure")
)
