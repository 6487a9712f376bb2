package formdata

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeExactLayout(t *testing.T) {
	body, err := Encode("Boundary-ABC", "file", "photo.jpg", "image/jpeg", []byte("DATA"))
	require.NoError(t, err)

	want := "--Boundary-ABC\r\n" +
		"Content-Disposition: form-data; name=\"file\"; filename=\"photo.jpg\"\r\n" +
		"Content-Type: image/jpeg\r\n" +
		"\r\n" +
		"DATA\r\n" +
		"--Boundary-ABC--\r\n"
	assert.Equal(t, want, string(body.Data))
	assert.Equal(t, "multipart/form-data; boundary=Boundary-ABC", body.ContentType())
	assert.Equal(t, len(want), body.Len())
}

func TestEncodePayloads(t *testing.T) {
	payloads := map[string][]byte{
		"empty":          {},
		"nil":            nil,
		"binary":         {0x00, 0xff, 0x0d, 0x0a, 0x2d, 0x2d, 0x00},
		"boundary word":  []byte("this payload mentions boundary and --boundary-- markers"),
		"trailing crlf":  []byte("line\r\n"),
		"large repeated": bytes.Repeat([]byte("abc"), 10000),
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			boundary := NewBoundary()
			body, err := Encode(boundary, "upload", "data.bin", "application/octet-stream", payload)
			require.NoError(t, err)

			data := body.Data
			prefix := []byte("--" + boundary + "\r\n")
			suffix := []byte("\r\n--" + boundary + "--\r\n")
			assert.True(t, bytes.HasPrefix(data, prefix))
			assert.True(t, bytes.HasSuffix(data, suffix))

			assert.Equal(t, 1, bytes.Count(data, []byte("Content-Disposition:")))
			assert.Equal(t, 1, bytes.Count(data, []byte("Content-Type: application/octet-stream\r\n")))
			assert.Contains(t, string(data), `name="upload"; filename="data.bin"`)

			// Payload sits contiguously between the header block and the closing marker
			headerEnd := bytes.Index(data, []byte("\r\n\r\n")) + 4
			embedded := data[headerEnd : len(data)-len(suffix)]
			assert.Equal(t, len(payload), len(embedded))
			assert.True(t, bytes.Equal(embedded, payload) || (len(payload) == 0 && len(embedded) == 0))
		})
	}
}

func TestEncodeEmptyStringsVerbatim(t *testing.T) {
	body, err := Encode("b1", "", "", "", []byte("x"))
	require.NoError(t, err)

	want := "--b1\r\n" +
		"Content-Disposition: form-data; name=\"\"; filename=\"\"\r\n" +
		"Content-Type: \r\n" +
		"\r\n" +
		"x\r\n" +
		"--b1--\r\n"
	assert.Equal(t, want, string(body.Data))
}

func TestEncodeRoundTripsThroughStdlibReader(t *testing.T) {
	payload := []byte("hello multipart")
	body, err := New("document", "notes.txt", "text/plain", payload)
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(body.ContentType())
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(bytes.NewReader(body.Data), params["boundary"])
	part, err := reader.NextPart()
	require.NoError(t, err)

	assert.Equal(t, "document", part.FormName())
	assert.Equal(t, "notes.txt", part.FileName())
	assert.Equal(t, "text/plain", part.Header.Get("Content-Type"))

	got, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	_, err = reader.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestEncodeRejectsInvalidBoundary(t *testing.T) {
	_, err := Encode("", "f", "n", "t", nil)
	assert.Error(t, err)

	_, err = Encode(strings.Repeat("x", 71), "f", "n", "t", nil)
	assert.Error(t, err)
}

func TestNewBoundaryUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		b := NewBoundary()
		assert.True(t, strings.HasPrefix(b, BoundaryPrefix))
		assert.LessOrEqual(t, len(b), 70)
		_, dup := seen[b]
		require.False(t, dup, "duplicate boundary %s", b)
		seen[b] = struct{}{}
	}
}

func TestConcurrentEncodingIndependent(t *testing.T) {
	const workers = 32
	var wg sync.WaitGroup
	results := make([]*Body, workers)
	payloads := make([][]byte, workers)

	for i := 0; i < workers; i++ {
		payloads[i] = bytes.Repeat([]byte{byte('a' + i%26)}, 1024+i)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body, err := New("file", "f.bin", "application/octet-stream", payloads[i])
			assert.NoError(t, err)
			results[i] = body
		}(i)
	}
	wg.Wait()

	for i, body := range results {
		require.NotNil(t, body)
		reader := multipart.NewReader(bytes.NewReader(body.Data), body.Boundary)
		part, err := reader.NextPart()
		require.NoError(t, err)
		got, err := io.ReadAll(part)
		require.NoError(t, err)
		assert.Equal(t, payloads[i], got)
	}
}

func TestDetectContentType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	assert.Equal(t, "image/png", DetectContentType(png))

	assert.True(t, strings.HasPrefix(DetectContentType([]byte("plain old text")), "text/plain"))
	assert.NotEmpty(t, DetectContentType(nil))
}
