package upload

import (
	"os"
	"path/filepath"

	uperrors "github.com/zfogg/uploadfile/pkg/errors"
	"github.com/zfogg/uploadfile/pkg/formdata"
	"github.com/zfogg/uploadfile/pkg/logger"
)

// UploadFile sends the file at path with the default uploader
func UploadFile(rawURL, path, fieldName, mimeType string, onComplete func(Outcome)) {
	Default().UploadFile(rawURL, path, fieldName, mimeType, onComplete)
}

// UploadFile reads path and uploads its contents under the file's base
// name. An empty mimeType is detected from the content. Invalid URLs and
// unreadable files are reported before UploadFile returns.
func (u *Uploader) UploadFile(rawURL, path, fieldName, mimeType string, onComplete func(Outcome)) {
	if onComplete == nil {
		onComplete = func(Outcome) {}
	}

	if _, err := ParseURL(rawURL); err != nil {
		onComplete(Failure(uperrors.InvalidURLError(err)))
		return
	}

	req, err := FileRequest(rawURL, path, fieldName, mimeType)
	if err != nil {
		onComplete(Failure(uperrors.Categorize(err)))
		return
	}

	u.Do(req, onComplete)
}

// FileRequest builds a Request from a file on disk
func FileRequest(rawURL, path, fieldName, mimeType string) (Request, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("Failed to read upload file", "path", path, "error", err)
		return Request{}, uperrors.FileNotFoundError(path, err)
	}

	if mimeType == "" {
		mimeType = formdata.DetectContentType(payload)
	}

	return Request{
		URL:       rawURL,
		Payload:   payload,
		FieldName: fieldName,
		Filename:  filepath.Base(path),
		MimeType:  mimeType,
	}, nil
}
