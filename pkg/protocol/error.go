package protocol

import (
	stderrors "errors"

	vterrors "github.com/vango-dev/vtree/internal/errors"
)

// ErrorMessage reports a failure to the peer.
type ErrorMessage struct {
	// Code is a registry code such as "V062", or empty.
	Code    string
	Message string
}

// NewErrorMessage describes err. Coded errors keep their code.
func NewErrorMessage(err error) *ErrorMessage {
	var ve *vterrors.Error
	if stderrors.As(err, &ve) {
		msg := ve.Message
		if ve.Detail != "" {
			msg += " (" + ve.Detail + ")"
		}
		return &ErrorMessage{Code: ve.Code, Message: msg}
	}
	return &ErrorMessage{Message: err.Error()}
}

// Encode encodes em as an error frame.
func (em *ErrorMessage) Encode() *Frame {
	e := NewEncoder()
	e.WriteString(em.Code)
	e.WriteString(em.Message)
	return NewFrame(FrameError, e.Bytes())
}

// Error implements error.
func (em *ErrorMessage) Error() string {
	if em.Code == "" {
		return em.Message
	}
	return em.Code + ": " + em.Message
}

// DecodeErrorMessage decodes an error payload.
func DecodeErrorMessage(payload []byte) (*ErrorMessage, error) {
	d := NewDecoder(payload)
	code, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	msg, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: code, Message: msg}, nil
}
