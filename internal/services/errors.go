package services

// ValidationError marks malformed or incomplete user input. It is the only
// error category the generation service propagates to the caller: it is a
// precondition failure, never retried and never recovered via fallback.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IntegrationError marks a failed interaction with a remote provider. It
// carries a human-readable message and, where available, the lower-level
// cause for diagnostics. The generation service converts it into a fallback
// result with a warning instead of failing the request.
type IntegrationError struct {
	Message string
	Err     error
}

func (e *IntegrationError) Error() string {
	return e.Message
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

func newIntegrationError(message string, cause error) error {
	return &IntegrationError{Message: message, Err: cause}
}
