package protocol

// ClientEvent is an event fired on the client against a node of the
// served tree.
type ClientEvent struct {
	NodeID uint64
	Type   string
	// Detail is opaque to the protocol; the server hands it to listeners
	// as the event detail.
	Detail string
}

// Encode encodes ev as an event frame.
func (ev *ClientEvent) Encode() *Frame {
	e := NewEncoder()
	e.WriteUvarint(ev.NodeID)
	e.WriteString(ev.Type)
	e.WriteString(ev.Detail)
	return NewFrame(FrameEvent, e.Bytes())
}

// DecodeClientEvent decodes an event payload.
func DecodeClientEvent(payload []byte) (*ClientEvent, error) {
	d := NewDecoder(payload)
	var ev ClientEvent
	var err error
	if ev.NodeID, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if ev.Type, err = d.ReadString(); err != nil {
		return nil, err
	}
	if ev.Detail, err = d.ReadString(); err != nil {
		return nil, err
	}
	return &ev, nil
}
