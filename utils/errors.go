package utils

import "errors"

var (
	// ErrProviderUnavailable is returned by service constructors when the
	// required API credentials are missing from the configuration.
	ErrProviderUnavailable = errors.New("provider is not configured")

	// ErrMalformedResponse means the model output could not be parsed as JSON.
	ErrMalformedResponse = errors.New("malformed AI response")

	// ErrSchemaViolation means the model output parsed but is missing required
	// fields or has wrong types.
	ErrSchemaViolation = errors.New("AI response violates course schema")
)
