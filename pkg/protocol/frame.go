package protocol

import (
	"encoding/binary"
	"io"

	vterrors "github.com/vango-dev/vtree/internal/errors"
)

// Version is the protocol version announced in the hello frame.
const Version = 1

// Frame layout.
const (
	// FrameHeaderSize is type (1) + flags (1) + payload length (4).
	FrameHeaderSize = 6

	// MaxPayloadSize bounds a single frame payload.
	MaxPayloadSize = MaxAllocation
)

// FrameType identifies the payload of a frame.
type FrameType uint8

const (
	FrameHello   FrameType = 0x00 // Server greeting
	FrameRecords FrameType = 0x01 // Server to client records
	FrameEvent   FrameType = 0x02 // Client to server event
	FrameError   FrameType = 0x03 // Error report
)

// String returns the frame type name.
func (ft FrameType) String() string {
	switch ft {
	case FrameHello:
		return "Hello"
	case FrameRecords:
		return "Records"
	case FrameEvent:
		return "Event"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// FrameFlags modify how a frame is applied.
type FrameFlags uint8

const (
	// FlagReset marks a records frame that replaces the whole document.
	FlagReset FrameFlags = 0x01
)

// Has reports whether ff contains flag.
func (ff FrameFlags) Has(flag FrameFlags) bool {
	return ff&flag != 0
}

// Frame errors. Both match with errors.Is.
var (
	ErrInvalidFrame = vterrors.New(vterrors.CodeInvalidFrame)
	ErrUnknownOp    = vterrors.New(vterrors.CodeUnknownOp)
)

// Frame is a header plus payload.
//
//	┌────────────┬────────────┬─────────────────────────────┐
//	│ Type (1)   │ Flags (1)  │ Payload length (4, BE)      │
//	└────────────┴────────────┴─────────────────────────────┘
//	│ Payload                                               │
//	└───────────────────────────────────────────────────────┘
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// NewFrame creates a frame without flags.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode returns the frame bytes, header included.
func (f *Frame) Encode() []byte {
	buf := make([]byte, FrameHeaderSize+len(f.Payload))
	buf[0] = byte(f.Type)
	buf[1] = byte(f.Flags)
	binary.BigEndian.PutUint32(buf[2:6], uint32(len(f.Payload)))
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf
}

// DecodeFrame decodes one complete frame. Trailing bytes are an error.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, invalidFrame("frame of %d bytes is shorter than its header", len(data))
	}
	n := binary.BigEndian.Uint32(data[2:6])
	if n > MaxPayloadSize {
		return nil, invalidFrame("payload of %d bytes exceeds the limit", n)
	}
	if uint64(len(data)) != uint64(FrameHeaderSize)+uint64(n) {
		return nil, invalidFrame("header announces %d payload bytes, got %d", n, len(data)-FrameHeaderSize)
	}
	payload := make([]byte, n)
	copy(payload, data[FrameHeaderSize:])
	return &Frame{Type: FrameType(data[0]), Flags: FrameFlags(data[1]), Payload: payload}, nil
}

// ReadFrame reads one frame from r.
func ReadFrame(r io.Reader) (*Frame, error) {
	var header [FrameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(header[2:6])
	if n > MaxPayloadSize {
		return nil, invalidFrame("payload of %d bytes exceeds the limit", n)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return &Frame{Type: FrameType(header[0]), Flags: FrameFlags(header[1]), Payload: payload}, nil
}

// WriteFrame writes f to w.
func WriteFrame(w io.Writer, f *Frame) error {
	if len(f.Payload) > MaxPayloadSize {
		return invalidFrame("payload of %d bytes exceeds the limit", len(f.Payload))
	}
	_, err := w.Write(f.Encode())
	return err
}

func invalidFrame(format string, args ...any) error {
	return vterrors.New(vterrors.CodeInvalidFrame).WithDetailf(format, args...)
}

// Hello is the first frame a server sends on a connection.
type Hello struct {
	Version     uint64
	IDAttribute string
}

// Encode encodes h as a hello frame.
func (h *Hello) Encode() *Frame {
	e := NewEncoder()
	e.WriteUvarint(h.Version)
	e.WriteString(h.IDAttribute)
	return NewFrame(FrameHello, e.Bytes())
}

// DecodeHello decodes a hello payload.
func DecodeHello(payload []byte) (*Hello, error) {
	d := NewDecoder(payload)
	v, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	attr, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &Hello{Version: v, IDAttribute: attr}, nil
}
