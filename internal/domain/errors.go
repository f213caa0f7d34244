package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrEmptyPrompt         = errors.New("prompt is required")
	ErrProviderFailure     = errors.New("provider failure")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrFetchTimeout        = errors.New("image fetch timed out")
	ErrFetchStatus         = errors.New("image fetch failed")
	ErrStoreUnavailable    = errors.New("store unavailable")
)
