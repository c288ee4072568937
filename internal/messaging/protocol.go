// Package messaging implements the native messaging framing used between the
// desktop shell and the host: a 32-bit little-endian length prefix followed by
// a UTF-8 JSON document.
package messaging

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	// DefaultMaxMessageSize is the maximum allowed message size (1MB).
	DefaultMaxMessageSize = 1024 * 1024

	// MaxMessageSizeLimit is the largest frame size a Reader accepts (64MB).
	MaxMessageSizeLimit = 64 * 1024 * 1024
)

// Request is a command invocation from the shell.
type Request struct {
	ID      string `json:"id,omitempty"`
	Command string `json:"command"`
	Path    string `json:"path,omitempty"`
}

// Response is sent back for every Request.
type Response struct {
	ID      string      `json:"id,omitempty"`
	Success bool        `json:"success"`
	Result  interface{} `json:"result,omitempty"`
	Error   string      `json:"error,omitempty"`   // machine-readable code, e.g. "unknown_command"
	Message string      `json:"message,omitempty"` // human-readable description
}

// Reader decodes length-prefixed requests.
type Reader struct {
	r       io.Reader
	maxSize uint32
}

// NewReader returns a Reader rejecting frames larger than maxSize bytes.
// A non-positive maxSize selects DefaultMaxMessageSize; values above
// MaxMessageSizeLimit are clamped to it.
func NewReader(r io.Reader, maxSize int) *Reader {
	if maxSize <= 0 {
		maxSize = DefaultMaxMessageSize
	}
	if maxSize > MaxMessageSizeLimit {
		maxSize = MaxMessageSizeLimit
	}
	return &Reader{r: r, maxSize: uint32(maxSize)}
}

// ReadRequest reads one request. It returns io.EOF, unwrapped, when the
// stream ends cleanly between frames.
func (d *Reader) ReadRequest() (*Request, error) {
	var length uint32
	if err := binary.Read(d.r, binary.LittleEndian, &length); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read message length: %w", err)
	}

	if length == 0 {
		return nil, fmt.Errorf("invalid message length: 0")
	}
	if length > d.maxSize {
		return nil, fmt.Errorf("message too large: %d bytes (max %d)", length, d.maxSize)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, fmt.Errorf("failed to read message body: %w", err)
	}

	var req Request
	if err := json.Unmarshal(buf, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	return &req, nil
}

// ReadRequest reads a single request with the default size limit.
func ReadRequest(r io.Reader) (*Request, error) {
	return NewReader(r, DefaultMaxMessageSize).ReadRequest()
}

// WriteResponse writes a length-prefixed JSON response to the given writer.
// The prefix and body go out in a single Write call.
func WriteResponse(w io.Writer, resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	frame := make([]byte, 4+len(data))
	binary.LittleEndian.PutUint32(frame[:4], uint32(len(data)))
	copy(frame[4:], data)

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
