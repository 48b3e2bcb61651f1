package attachment

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabai/gabai-backend/internal/chat"
)

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestEncode_ClassifiesByMIME(t *testing.T) {
	tests := []struct {
		name     string
		mime     string
		expected string
	}{
		{name: "PNG is an image", mime: "image/png", expected: chat.AttachmentImage},
		{name: "JPEG is an image", mime: "image/jpeg", expected: chat.AttachmentImage},
		{name: "PDF is a file", mime: "application/pdf", expected: chat.AttachmentFile},
		{name: "Missing MIME is a file", mime: "", expected: chat.AttachmentFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			att, err := Encode(File{Name: "upload", MIME: tt.mime, Reader: strings.NewReader("payload")})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, att.Type)
		})
	}
}

func TestEncode_ProducesDataURI(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	att, err := Encode(File{Name: "logo.png", MIME: "image/png", Reader: bytes.NewReader(payload)})
	require.NoError(t, err)

	assert.Equal(t, "logo.png", att.Name)
	require.True(t, strings.HasPrefix(att.URL, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(att.URL, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestEncode_EmptyMIMEDefaultsToOctetStream(t *testing.T) {
	att, err := Encode(File{Name: "blob", Reader: strings.NewReader("x")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(att.URL, "data:application/octet-stream;base64,"))
}

func TestEncodeAll_IsolatesFailures(t *testing.T) {
	results := EncodeAll([]File{
		{Name: "ok-1.txt", MIME: "text/plain", Reader: strings.NewReader("one")},
		{Name: "broken.txt", MIME: "text/plain", Reader: errReader{}},
		{Name: "ok-2.txt", MIME: "text/plain", Reader: strings.NewReader("two")},
	})

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "ok-1.txt", results[0].Name)
	assert.Error(t, results[1].Err)
	assert.Equal(t, "broken.txt", results[1].Name)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "ok-2.txt", results[2].Name)
}

func TestRecorder_ConcatenatesChunksAndMeasuresDuration(t *testing.T) {
	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rec := NewRecorder("audio/webm")
	rec.now = func() time.Time { return current }

	rec.Start()
	rec.Write([]byte("chunk-one-"))
	rec.Write([]byte("chunk-two"))

	current = current.Add(3700 * time.Millisecond)
	att, err := rec.Stop("voice-message.webm")
	require.NoError(t, err)

	assert.Equal(t, chat.AttachmentAudio, att.Type)
	assert.Equal(t, "voice-message.webm", att.Name)
	require.NotNil(t, att.Duration)
	assert.Equal(t, 3, *att.Duration)

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(att.URL, "data:audio/webm;base64,"))
	require.NoError(t, err)
	assert.Equal(t, []byte("chunk-one-chunk-two"), decoded)
}

func TestRecorder_DropsChunksWhileInactive(t *testing.T) {
	rec := NewRecorder("audio/webm")
	rec.Write([]byte("before start"))

	rec.Start()
	rec.Write([]byte("kept"))
	att, err := rec.Stop("clip.webm")
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(att.URL, "data:audio/webm;base64,"))
	require.NoError(t, err)
	assert.Equal(t, []byte("kept"), decoded)

	// Stopped recorder rejects another Stop.
	_, err = rec.Stop("clip.webm")
	assert.Error(t, err)
}

func TestRecorder_StartDiscardsPreviousCapture(t *testing.T) {
	rec := NewRecorder("")
	rec.Start()
	rec.Write([]byte("old"))
	rec.Start()
	rec.Write([]byte("new"))

	att, err := rec.Stop("clip.webm")
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(att.URL, "data:audio/webm;base64,"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), decoded)
}

func TestRecorder_EmptyCaptureFails(t *testing.T) {
	rec := NewRecorder("audio/webm")
	rec.Start()
	_, err := rec.Stop("empty.webm")
	assert.Error(t, err)
}
