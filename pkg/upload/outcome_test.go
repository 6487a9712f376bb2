package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	uperrors "github.com/zfogg/uploadfile/pkg/errors"
)

func TestOutcomeSuccess(t *testing.T) {
	o := Success(map[string]interface{}{"id": float64(1)}, 201)

	assert.True(t, o.OK())
	assert.Equal(t, 201, o.StatusCode)
	assert.Empty(t, o.Message())
	assert.Empty(t, o.Kind())
	assert.NoError(t, o.AsError())
}

func TestOutcomeFailureKeepsStatus(t *testing.T) {
	o := Failure(uperrors.ResponseParseError(nil, 502))

	assert.False(t, o.OK())
	assert.Equal(t, 502, o.StatusCode)
	assert.Equal(t, uperrors.KindResponseParse, o.Kind())
	assert.Equal(t, "Error: invalid JSON response", o.Message())
}

func TestOutcomeFailureNil(t *testing.T) {
	var o Outcome
	require.NotPanics(t, func() { o = Failure(nil) })

	assert.False(t, o.OK())
	assert.Equal(t, uperrors.KindUnknown, o.Kind())
	assert.Equal(t, "Error: upload failed", o.Message())
	assert.Error(t, o.AsError())
}
