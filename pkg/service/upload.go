package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zfogg/uploadfile/pkg/config"
	"github.com/zfogg/uploadfile/pkg/formdata"
	"github.com/zfogg/uploadfile/pkg/logger"
	"github.com/zfogg/uploadfile/pkg/output"
	"github.com/zfogg/uploadfile/pkg/prompter"
	"github.com/zfogg/uploadfile/pkg/upload"
)

// StdinFilename names payloads read from stdin when no filename is given
const StdinFilename = "stdin"

// ErrUploadCancelled is returned when the user declines the confirmation prompt
var ErrUploadCancelled = errors.New("upload cancelled")

// UploadOptions are the user-supplied inputs of one upload
type UploadOptions struct {
	Path     string // file to upload, "-" for stdin, "" to prompt or read piped stdin
	URL      string
	Field    string
	Filename string
	MimeType string
}

// UploadService resolves CLI inputs into an upload request and runs it
type UploadService struct {
	uploader *upload.Uploader

	stdin           io.Reader
	stdinIsTerminal func() bool
}

// NewUploadService creates a new upload service
func NewUploadService(uploader *upload.Uploader) *UploadService {
	return &UploadService{
		uploader:        uploader,
		stdin:           os.Stdin,
		stdinIsTerminal: prompter.StdinIsTerminal,
	}
}

// Upload resolves opts and blocks until the upload outcome is known.
// Errors are returned only for input problems; upload failures are
// reported through the Outcome.
func (us *UploadService) Upload(opts UploadOptions) (upload.Outcome, error) {
	req, interactive, err := us.buildRequest(opts)
	if err != nil {
		return upload.Outcome{}, err
	}

	if interactive {
		ok, err := prompter.PromptConfirm(fmt.Sprintf("Upload %s (%d bytes) to %s?", req.Filename, len(req.Payload), req.URL))
		if err != nil {
			return upload.Outcome{}, err
		}
		if !ok {
			logger.Info("Upload cancelled by user", "filename", req.Filename)
			return upload.Outcome{}, ErrUploadCancelled
		}
	}

	if output.GetOutputFormat() == output.FormatText {
		if len(req.Payload) == 0 {
			output.PrintWarning("%s is empty, sending a zero-byte part", req.Filename)
		}
		output.PrintInfo("Uploading %s (%d bytes) to %s", req.Filename, len(req.Payload), req.URL)
	}

	logger.Info("Uploading", "url", req.URL, "filename", req.Filename, "bytes", len(req.Payload))
	outcome := us.uploader.Send(req)

	if outcome.OK() {
		logger.Info("Upload succeeded", "status", outcome.StatusCode)
	} else {
		logger.Warn("Upload failed", "kind", outcome.Kind(), "error", outcome.Message(), "cause", outcome.Err.Cause)
	}
	return outcome, nil
}

// BuildRequest turns opts into a request, filling defaults from config.
// When the path has to be prompted for, a missing URL is prompted for too.
func (us *UploadService) BuildRequest(opts UploadOptions) (upload.Request, error) {
	req, _, err := us.buildRequest(opts)
	return req, err
}

func (us *UploadService) buildRequest(opts UploadOptions) (upload.Request, bool, error) {
	path := opts.Path
	fromStdin := path == "-"

	interactive := false

	if path == "" {
		if !us.stdinIsTerminal() {
			fromStdin = true
		} else {
			var err error
			path, err = prompter.PromptString("File path: ")
			if err != nil {
				return upload.Request{}, false, err
			}
			if path == "" {
				return upload.Request{}, false, fmt.Errorf("file path cannot be empty")
			}
			interactive = true
		}
	}

	targetURL := opts.URL
	if targetURL == "" {
		targetURL = config.GetString("upload.url")
		if interactive {
			var err error
			targetURL, err = prompter.PromptStringDefault("Upload URL:", targetURL)
			if err != nil {
				return upload.Request{}, false, err
			}
		}
	}

	field := opts.Field
	if field == "" {
		field = config.GetString("upload.field")
	}

	var req upload.Request
	if fromStdin {
		payload, err := io.ReadAll(us.stdin)
		if err != nil {
			return upload.Request{}, false, fmt.Errorf("failed to read stdin: %w", err)
		}
		mimeType := opts.MimeType
		if mimeType == "" {
			mimeType = formdata.DetectContentType(payload)
		}
		req = upload.Request{
			URL:       targetURL,
			Payload:   payload,
			FieldName: field,
			Filename:  StdinFilename,
			MimeType:  mimeType,
		}
	} else {
		var err error
		req, err = upload.FileRequest(targetURL, filepath.Clean(path), field, opts.MimeType)
		if err != nil {
			return upload.Request{}, false, err
		}
	}

	if opts.Filename != "" {
		req.Filename = opts.Filename
	}

	return req, interactive, nil
}
