package upload

import (
	uperrors "github.com/zfogg/uploadfile/pkg/errors"
)

// Outcome is the single result of an upload: either a parsed JSON value
// (success) or an error (failure), never both.
type Outcome struct {
	// Value holds the decoded response: nil, bool, float64, string,
	// []interface{} or map[string]interface{}
	Value interface{}

	// Err is set on failure
	Err *uperrors.UploadError

	// StatusCode is the HTTP status when a response arrived, 0 otherwise
	StatusCode int
}

// Success wraps a parsed JSON value
func Success(value interface{}, statusCode int) Outcome {
	return Outcome{Value: value, StatusCode: statusCode}
}

// Failure wraps an upload error. A nil error still yields a failure so
// the outcome never reads as a success with no value.
func Failure(err *uperrors.UploadError) Outcome {
	if err == nil {
		err = uperrors.NewUploadError(uperrors.KindUnknown, "Error: upload failed", nil)
	}
	return Outcome{Err: err, StatusCode: err.StatusCode}
}

// OK reports whether the outcome is a success
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Message returns the failure message, or "" on success
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Message
}

// AsError returns the failure as an error, or nil on success
func (o Outcome) AsError() error {
	if o.Err == nil {
		return nil
	}
	return o.Err
}

// Kind returns the failure kind, or "" on success
func (o Outcome) Kind() uperrors.ErrorKind {
	if o.Err == nil {
		return ""
	}
	return o.Err.Kind
}
