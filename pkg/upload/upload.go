// Package upload sends a file to an HTTP endpoint as multipart/form-data
// and delivers the decoded JSON response through a completion callback.
//
// Every call produces exactly one Outcome. An unparseable URL is reported
// before Upload returns and without network activity; every other outcome
// is delivered later from a goroutine owned by the call.
package upload

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
	"github.com/zfogg/uploadfile/pkg/client"
	uperrors "github.com/zfogg/uploadfile/pkg/errors"
	"github.com/zfogg/uploadfile/pkg/formdata"
	"github.com/zfogg/uploadfile/pkg/logger"
)

// Request describes one upload
type Request struct {
	URL       string
	Payload   []byte
	FieldName string
	Filename  string
	MimeType  string
}

// Uploader issues multipart uploads over a resty client. It holds no
// per-call state and is safe for concurrent use.
type Uploader struct {
	http *resty.Client
}

var (
	defaultUploader *Uploader
	defaultOnce     sync.Once
)

// New creates an uploader over the given client
func New(httpClient *resty.Client) *Uploader {
	return &Uploader{http: httpClient}
}

// Default returns the process-wide uploader backed by the shared client
func Default() *Uploader {
	defaultOnce.Do(func() {
		defaultUploader = New(client.GetClient())
	})
	return defaultUploader
}

// Upload sends payload with the default uploader
func Upload(rawURL string, payload []byte, fieldName, filename, mimeType string, onComplete func(Outcome)) {
	Default().Upload(rawURL, payload, fieldName, filename, mimeType, onComplete)
}

// Upload posts payload to rawURL as a single form part named fieldName and
// calls onComplete exactly once with the result
func (u *Uploader) Upload(rawURL string, payload []byte, fieldName, filename, mimeType string, onComplete func(Outcome)) {
	u.Do(Request{
		URL:       rawURL,
		Payload:   payload,
		FieldName: fieldName,
		Filename:  filename,
		MimeType:  mimeType,
	}, onComplete)
}

// Do runs req and calls onComplete exactly once with the result
func (u *Uploader) Do(req Request, onComplete func(Outcome)) {
	if onComplete == nil {
		onComplete = func(Outcome) {}
	}

	target, err := ParseURL(req.URL)
	if err != nil {
		logger.Debug("Rejected upload URL", "url", req.URL, "error", err)
		onComplete(Failure(uperrors.InvalidURLError(err)))
		return
	}

	go func() {
		onComplete(u.send(target, req))
	}()
}

// UploadChan runs req and returns a channel that yields its outcome once
// and is then closed
func (u *Uploader) UploadChan(req Request) <-chan Outcome {
	ch := make(chan Outcome, 1)
	u.Do(req, func(o Outcome) {
		ch <- o
		close(ch)
	})
	return ch
}

// Send runs req and blocks until the outcome is available
func (u *Uploader) Send(req Request) Outcome {
	return <-u.UploadChan(req)
}

// ParseURL accepts non-empty absolute URLs with a scheme and a host
func ParseURL(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("empty url")
	}

	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("url %q must include a scheme and a host", rawURL)
	}

	return target, nil
}

func (u *Uploader) send(target *url.URL, req Request) Outcome {
	body, err := formdata.New(req.FieldName, req.Filename, req.MimeType, req.Payload)
	if err != nil {
		logger.Error("Failed to encode upload body", "error", err)
		return Failure(uperrors.EncodingError(err))
	}

	logger.Debug("Uploading",
		"url", target.String(),
		"field", req.FieldName,
		"filename", req.Filename,
		"mime_type", req.MimeType,
		"payload_bytes", len(req.Payload),
		"body_bytes", body.Len())

	resp, err := u.http.R().
		SetHeader("Content-Type", body.ContentType()).
		SetBody(body.Data).
		Post(target.String())

	if err != nil {
		logger.Debug("Upload transport failure", "url", target.String(), "error", err)
		return Failure(uperrors.TransportError(err, 0))
	}

	return decodeResponse(resp.StatusCode(), resp.Body())
}

func decodeResponse(statusCode int, data []byte) Outcome {
	if len(data) == 0 {
		logger.Debug("Upload response had no body", "status", statusCode)
		return Failure(uperrors.TransportError(nil, statusCode))
	}

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		logger.Debug("Upload response is not JSON", "status", statusCode, "error", err)
		return Failure(uperrors.ResponseParseError(err, statusCode))
	}

	logger.Debug("Upload complete", "status", statusCode)
	return Success(value, statusCode)
}
