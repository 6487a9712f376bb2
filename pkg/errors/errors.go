package errors

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorKind categorizes upload failures
type ErrorKind string

const (
	// Detected before any network activity
	KindInvalidURL   ErrorKind = "invalid_url"
	KindFileNotFound ErrorKind = "file_not_found"
	KindEncoding     ErrorKind = "encoding"

	// Detected after the request was sent
	KindTransport     ErrorKind = "transport"
	KindResponseParse ErrorKind = "response_parse"

	KindUnknown ErrorKind = "unknown"
)

// Fixed messages reported to callers
const (
	MessageInvalidURL       = "Error: Invalid URL"
	MessageServerNotWorking = "Error: Server not working..."
)

// UploadError represents a failed upload with context
type UploadError struct {
	Kind       ErrorKind
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
}

// Error implements the error interface
func (e *UploadError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error
func (e *UploadError) Unwrap() error {
	return e.Cause
}

// WithSuggestion adds a helpful suggestion to the error
func (e *UploadError) WithSuggestion(suggestion string) *UploadError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *UploadError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// NewUploadError creates a new upload error
func NewUploadError(kind ErrorKind, message string, cause error) *UploadError {
	return &UploadError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// InvalidURLError is reported when the target URL cannot be parsed
func InvalidURLError(cause error) *UploadError {
	return NewUploadError(KindInvalidURL, MessageInvalidURL, cause).
		WithSuggestion("Use an absolute URL such as http://localhost:8787/upload.")
}

// TransportError is reported when no usable response body arrived.
// The cause is kept for errors.Unwrap but never shown in the message.
func TransportError(cause error, statusCode int) *UploadError {
	err := NewUploadError(KindTransport, MessageServerNotWorking, cause)
	err.StatusCode = statusCode
	return err.WithSuggestion(transportSuggestion(cause))
}

// ResponseParseError is reported when the response body is not valid JSON
func ResponseParseError(cause error, statusCode int) *UploadError {
	msg := "Error: invalid JSON response"
	if cause != nil {
		msg = "Error: " + cause.Error()
	}
	err := NewUploadError(KindResponseParse, msg, cause)
	err.StatusCode = statusCode
	return err.WithSuggestion("The server answered but not with JSON. Check the upload URL.")
}

// FileNotFoundError creates a file not found error
func FileNotFoundError(path string, cause error) *UploadError {
	return NewUploadError(KindFileNotFound, fmt.Sprintf("Error: File not found: %s", path), cause).
		WithSuggestion("Check the file path and try again.")
}

// EncodingError is reported when the multipart body could not be built
func EncodingError(cause error) *UploadError {
	return NewUploadError(KindEncoding, "Error: failed to encode request body", cause)
}

func transportSuggestion(cause error) string {
	if cause == nil {
		return "The server returned an empty response. Check that the endpoint accepts uploads."
	}

	var netErr net.Error
	isTimeout := errors.As(cause, &netErr) && netErr.Timeout()

	msg := strings.ToLower(cause.Error())
	switch {
	case strings.Contains(msg, "connection refused"):
		return "Could not connect to server. Make sure it's running."
	case isTimeout, strings.Contains(msg, "timeout"), strings.Contains(msg, "context deadline exceeded"):
		return "The server is taking too long to respond. Try again in a moment."
	case strings.Contains(msg, "no such host"):
		return "The host name could not be resolved. Check the upload URL."
	default:
		return "Check your internet connection and try again."
	}
}

// IsKind reports whether err is an UploadError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var upErr *UploadError
	if errors.As(err, &upErr) {
		return upErr.Kind == kind
	}
	return false
}

// Categorize converts a standard error into an UploadError
func Categorize(err error) *UploadError {
	if err == nil {
		return nil
	}

	var upErr *UploadError
	if errors.As(err, &upErr) {
		return upErr
	}

	return NewUploadError(KindUnknown, err.Error(), err)
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	upErr := Categorize(err)
	var sb strings.Builder

	sb.WriteString(strings.TrimPrefix(upErr.Message, "Error: "))
	if upErr.Kind != KindUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(upErr.Kind))
		if upErr.StatusCode > 0 {
			sb.WriteString(fmt.Sprintf(", status %d", upErr.StatusCode))
		}
		sb.WriteString(")")
	}
	sb.WriteString("\n")

	if upErr.HasSuggestion() {
		sb.WriteString("Suggestion: ")
		sb.WriteString(upErr.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}
