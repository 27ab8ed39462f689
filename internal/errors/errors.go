package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError carries an internal message for logs and a separate message safe
// to show to the Telegram user.
type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Retryable   bool
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

func (e *AppError) Cause() error {
	return e.Unwrap()
}

// NewTransportError reports an HTTP-level upstream failure: non-2xx status,
// timeout, DNS failure, or an unreadable body.
func NewTransportError(service, msg string, cause error) *AppError {
	return &AppError{
		Code:        "E310",
		Message:     fmt.Sprintf("%s: %s", service, msg),
		UserMessage: msg,
		Severity:    SeverityMedium,
		Retryable:   true,
		cause:       cause,
	}
}

// NewUpstreamDataError reports a 2xx response whose payload is semantically
// invalid, such as a failing embedded status code.
func NewUpstreamDataError(service, msg string) *AppError {
	return &AppError{
		Code:        "E320",
		Message:     fmt.Sprintf("%s: %s", service, msg),
		UserMessage: msg,
		Severity:    SeverityMedium,
		Retryable:   false,
		cause:       nil,
	}
}

func NewValidationError(msg string) *AppError {
	return &AppError{
		Code:        "E100",
		Message:     msg,
		UserMessage: fmt.Sprintf("Invalid input. %s", msg),
		Severity:    SeverityLow,
		Retryable:   false,
		cause:       nil,
	}
}

func NewInternalError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E200",
		Message:     fmt.Sprintf("Internal error: %s", underlyingMsg),
		UserMessage: "Something went wrong. Please try again later.",
		Severity:    SeverityHigh,
		Retryable:   true,
		cause:       cause,
	}
}

func NewRateLimitError(retryAfter int) *AppError {
	return &AppError{
		Code:        "E500",
		Message:     fmt.Sprintf("Rate limit exceeded: retry after %d seconds", retryAfter),
		UserMessage: fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter),
		Severity:    SeverityLow,
		Retryable:   false,
		cause:       nil,
	}
}
