package errors

import "net/http"

var (
	ErrMapNotReady = New(
		"MAP_NOT_READY",
		"Risk map data is not loaded yet",
		http.StatusServiceUnavailable,
	)

	ErrInvalidYear = New(
		"INVALID_YEAR",
		"Invalid year value",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrNotFound = New(
		"NOT_FOUND",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
