package domain

import "errors"

var (
	ErrMissingYear   = errors.New("year is required for update command")
	ErrUnknownAction = errors.New("unknown map action")
)
