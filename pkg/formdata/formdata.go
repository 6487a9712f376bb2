// Package formdata encodes a single-part multipart/form-data request body.
//
// The part header is written verbatim: field name, filename and MIME type
// are not quoted or escaped, and empty values are accepted. The boundary
// is never checked against the payload.
package formdata

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// BoundaryPrefix starts every generated boundary token
const BoundaryPrefix = "Boundary-"

// Body is an encoded multipart/form-data request body
type Body struct {
	Boundary string
	Data     []byte
}

// ContentType returns the request Content-Type header value
func (b *Body) ContentType() string {
	return "multipart/form-data; boundary=" + b.Boundary
}

// Len returns the encoded body size in bytes
func (b *Body) Len() int {
	return len(b.Data)
}

// NewBoundary returns a fresh boundary token
func NewBoundary() string {
	return BoundaryPrefix + strings.ToUpper(uuid.NewString())
}

// Encode builds the body:
//
//	--{boundary}\r\n
//	Content-Disposition: form-data; name="{fieldName}"; filename="{filename}"\r\n
//	Content-Type: {mimeType}\r\n
//	\r\n
//	{payload}\r\n
//	--{boundary}--\r\n
func Encode(boundary, fieldName, filename, mimeType string, payload []byte) (*Body, error) {
	buf := &bytes.Buffer{}
	buf.Grow(len(payload) + 2*len(boundary) + len(fieldName) + len(filename) + len(mimeType) + 96)

	writer := multipart.NewWriter(buf)
	if err := writer.SetBoundary(boundary); err != nil {
		return nil, fmt.Errorf("invalid boundary: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldName, filename))
	header.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create form part: %w", err)
	}

	if _, err := part.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to write payload: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	return &Body{Boundary: boundary, Data: buf.Bytes()}, nil
}

// New encodes payload under a freshly generated boundary
func New(fieldName, filename, mimeType string, payload []byte) (*Body, error) {
	return Encode(NewBoundary(), fieldName, filename, mimeType, payload)
}

// DetectContentType sniffs the MIME type of payload, falling back to
// application/octet-stream
func DetectContentType(payload []byte) string {
	if mt := mimetype.Detect(payload); mt != nil {
		return mt.String()
	}
	return "application/octet-stream"
}
