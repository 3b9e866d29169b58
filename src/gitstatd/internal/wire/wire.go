// Package wire frames requests and responses on the daemon's byte stream.
// Frames are separated by ASCII 30 (record separator); fields within a
// frame by ASCII 31 (unit separator). Framing is purely mechanical: the
// codec never interprets field contents.
package wire

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/promptkit/gitstatd/src/gitstatd/entity"
)

const (
	// RS terminates a frame.
	RS = '\x1e'
	// US separates fields within a frame.
	US = '\x1f'
)

var (
	// ErrTruncatedFrame reports a stream that ended mid-frame. The stream
	// is unusable past this point.
	ErrTruncatedFrame = errors.New("wire: stream ended inside an unterminated frame")
	// ErrMalformedFrame reports a request frame without the id/path field
	// separator.
	ErrMalformedFrame = errors.New("wire: request frame is missing the field separator")
)

// Decoder reads request frames from a stream. It is not safe for
// concurrent use; the dispatch loop is its only caller.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder wraps r for frame-at-a-time reading.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next blocks until one full frame is available and decodes it. It returns
// io.EOF when the stream ends exactly at a record boundary, and
// ErrTruncatedFrame when bytes remain after the last record separator.
func (d *Decoder) Next() (entity.Request, error) {
	frame, err := d.r.ReadString(RS)
	if err != nil {
		if err == io.EOF {
			if len(frame) == 0 {
				return entity.Request{}, io.EOF
			}
			return entity.Request{}, ErrTruncatedFrame
		}
		return entity.Request{}, err
	}

	id, path, ok := strings.Cut(frame[:len(frame)-1], string(US))
	if !ok {
		return entity.Request{}, ErrMalformedFrame
	}
	return entity.Request{ID: id, Path: path}, nil
}

// Encoder writes response frames to a stream, flushing after each frame so
// the client never waits on a partially buffered response.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder wraps w for frame-at-a-time writing.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode serializes one response frame. Optional fields are emitted only
// for repository statuses; entity.Status.WireFields enforces that.
func (e *Encoder) Encode(s *entity.Status) error {
	for i, f := range s.WireFields() {
		if i > 0 {
			if err := e.w.WriteByte(US); err != nil {
				return err
			}
		}
		if _, err := e.w.WriteString(f); err != nil {
			return err
		}
	}
	if err := e.w.WriteByte(RS); err != nil {
		return err
	}
	return e.w.Flush()
}
