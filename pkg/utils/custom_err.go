package utils

import "errors"

var (
	ErrInvalidTripRequest = errors.New("invalid trip request")
	ErrInvalidInput       = errors.New("invalid input")

	// Itinerary pipeline. Everything except ErrModelNotConfigured is absorbed by fallback.
	ErrTransportFailure   = errors.New("transport failure")
	ErrUpstreamRejection  = errors.New("upstream rejected request")
	ErrParseFailure       = errors.New("model output is not valid JSON")
	ErrSchemaFailure      = errors.New("model output does not match trip plan schema")
	ErrModelNotConfigured = errors.New("model provider credentials are not configured")

	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrUnauthorized       = errors.New("unauthorized")
)
