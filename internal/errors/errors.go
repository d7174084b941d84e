package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code string) bool {
	return GetCode(err) == code
}

// Predefined error codes
const (
	CodeEmptySample              = "EMPTY_SAMPLE"
	CodeInsufficientSample       = "INSUFFICIENT_SAMPLE"
	CodeInvalidVariance          = "INVALID_VARIANCE"
	CodeInvalidSignificanceLevel = "INVALID_SIGNIFICANCE_LEVEL"
	CodeInvalidProportion        = "INVALID_PROPORTION"
	CodeDegenerateStandardError  = "DEGENERATE_STANDARD_ERROR"
	CodeUnknownTest              = "UNKNOWN_TEST"
	CodeConfigInvalid            = "CONFIG_INVALID"
	CodeInvalidInput             = "INVALID_INPUT"
	CodeInternalError            = "INTERNAL_ERROR"
)

// Common error constructors

// EmptySample signals a raw sample with zero observations.
func EmptySample(field string) *AppError {
	return New(CodeEmptySample, fmt.Sprintf("%s: sample has no observations", field))
}

// InsufficientSample signals a sample too small for the statistic it must feed.
func InsufficientSample(field string, size, min int) *AppError {
	return New(CodeInsufficientSample,
		fmt.Sprintf("%s: sample size %d is below the required minimum %d", field, size, min))
}

// InvalidVariance signals a non-positive variance or standard deviation.
func InvalidVariance(field string, value float64) *AppError {
	return New(CodeInvalidVariance,
		fmt.Sprintf("%s: variance/stddev must be strictly positive, got %g", field, value))
}

// InvalidSignificanceLevel signals alpha outside (0, 1).
func InvalidSignificanceLevel(alpha float64) *AppError {
	return New(CodeInvalidSignificanceLevel,
		fmt.Sprintf("significance level must satisfy 0 < alpha < 1, got %g", alpha))
}

// InvalidProportion signals a proportion or success count out of range.
func InvalidProportion(field string, detail string) *AppError {
	return New(CodeInvalidProportion, fmt.Sprintf("%s: %s", field, detail))
}

// DegenerateStandardError signals a zero or non-finite test-statistic denominator.
func DegenerateStandardError(detail string) *AppError {
	return New(CodeDegenerateStandardError,
		fmt.Sprintf("degenerate standard error: %s", detail))
}

// UnknownTest signals an unrecognized test kind.
func UnknownTest(kind string) *AppError {
	return New(CodeUnknownTest, fmt.Sprintf("unknown test kind %q", kind))
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
