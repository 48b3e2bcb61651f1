// Package attachment converts raw file uploads and recorded audio into
// self-contained data-URI attachments. Embedding the bytes directly keeps
// every session fully self-contained in the persisted list, at the cost of
// storage size: large attachments eat quota headroom, which is why there is
// deliberately no chunked or streaming storage here.
package attachment

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabai/gabai-backend/internal/chat"
)

// File is one raw upload to encode.
type File struct {
	Name   string
	MIME   string
	Reader io.Reader
}

// Result pairs an encoding outcome with the file it came from, so one bad
// file in a batch is reported without aborting its siblings.
type Result struct {
	Name       string
	Attachment chat.Attachment
	Err        error
}

// Encode reads the file's full contents and produces a data-URI attachment.
// MIME types under image/ classify as image, everything else as file.
func Encode(f File) (chat.Attachment, error) {
	data, err := io.ReadAll(f.Reader)
	if err != nil {
		return chat.Attachment{}, fmt.Errorf("read %s: %w", f.Name, err)
	}

	mime := f.MIME
	if mime == "" {
		mime = "application/octet-stream"
	}

	kind := chat.AttachmentFile
	if strings.HasPrefix(mime, "image/") {
		kind = chat.AttachmentImage
	}

	return chat.Attachment{
		Type: kind,
		URL:  dataURI(mime, data),
		Name: f.Name,
	}, nil
}

// EncodeAll encodes a batch, one Result per input in order. A read failure
// is isolated to its own Result.
func EncodeAll(files []File) []Result {
	results := make([]Result, len(files))
	for i, f := range files {
		att, err := Encode(f)
		results[i] = Result{Name: f.Name, Attachment: att, Err: err}
	}
	return results
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Recorder accumulates audio chunks between Start and Stop and encodes the
// concatenation through the same data-URI path as file uploads. Duration is
// wall-clock seconds at integer granularity.
type Recorder struct {
	mime    string
	now     func() time.Time
	started time.Time
	chunks  [][]byte
	active  bool
}

// NewRecorder creates a recorder for the given audio MIME type.
func NewRecorder(mime string) *Recorder {
	if mime == "" {
		mime = "audio/webm"
	}
	return &Recorder{mime: mime, now: time.Now}
}

// Start begins a capture, discarding any previous chunks.
func (r *Recorder) Start() {
	r.started = r.now()
	r.chunks = nil
	r.active = true
}

// Write appends one captured chunk. Chunks written while inactive are dropped.
func (r *Recorder) Write(chunk []byte) {
	if !r.active || len(chunk) == 0 {
		return
	}
	buf := make([]byte, len(chunk))
	copy(buf, chunk)
	r.chunks = append(r.chunks, buf)
}

// Stop concatenates the captured chunks into a single audio attachment.
func (r *Recorder) Stop(name string) (chat.Attachment, error) {
	if !r.active {
		return chat.Attachment{}, fmt.Errorf("recorder not started")
	}
	r.active = false

	var data []byte
	for _, chunk := range r.chunks {
		data = append(data, chunk...)
	}
	if len(data) == 0 {
		return chat.Attachment{}, fmt.Errorf("no audio captured")
	}

	duration := int(r.now().Sub(r.started).Seconds())
	return chat.Attachment{
		Type:     chat.AttachmentAudio,
		URL:      dataURI(r.mime, data),
		Name:     name,
		Duration: &duration,
	}, nil
}
