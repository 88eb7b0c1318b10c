package protocol

import (
	vterrors "github.com/vango-dev/vtree/internal/errors"
)

// Op is a record operation.
type Op uint8

const (
	// OpReset replaces the whole document body with HTML.
	OpReset Op = 0x01
	// OpReplaceNode replaces the node NodeID with HTML.
	OpReplaceNode Op = 0x02
	// OpRemoveNode detaches the node NodeID.
	OpRemoveNode Op = 0x03
	// OpInsertNode inserts HTML as child Index of ParentID, first removing
	// any existing node with the same ID.
	OpInsertNode Op = 0x04
	// OpSetAttr sets attribute Key to Value on NodeID.
	OpSetAttr Op = 0x05
	// OpRemoveAttr removes attribute Key from NodeID.
	OpRemoveAttr Op = 0x06
	// OpSetText sets the text content of NodeID to Value.
	OpSetText Op = 0x07
)

var opNames = map[Op]string{
	OpReset:       "Reset",
	OpReplaceNode: "ReplaceNode",
	OpRemoveNode:  "RemoveNode",
	OpInsertNode:  "InsertNode",
	OpSetAttr:     "SetAttr",
	OpRemoveAttr:  "RemoveAttr",
	OpSetText:     "SetText",
}

// String returns the operation name.
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "Unknown"
}

// Record is one change to apply on the client. Only the fields used by Op
// are encoded.
type Record struct {
	Op       Op
	NodeID   uint64
	ParentID uint64
	Index    int
	Key      string
	Value    string
	HTML     string
}

// RecordsFrame is the payload of a FrameRecords frame.
type RecordsFrame struct {
	// Seq increases by one with every frame sent on a connection.
	Seq     uint64
	Records []Record
}

// Reset reports whether the frame contains an OpReset record.
func (rf *RecordsFrame) Reset() bool {
	for _, r := range rf.Records {
		if r.Op == OpReset {
			return true
		}
	}
	return false
}

// Encode encodes rf as a records frame. Frames containing a reset carry
// FlagReset.
func (rf *RecordsFrame) Encode() (*Frame, error) {
	e := NewEncoder()
	e.WriteUvarint(rf.Seq)
	e.WriteUvarint(uint64(len(rf.Records)))
	for i := range rf.Records {
		if err := encodeRecord(e, &rf.Records[i]); err != nil {
			return nil, err
		}
	}
	f := NewFrame(FrameRecords, e.Bytes())
	if rf.Reset() {
		f.Flags |= FlagReset
	}
	return f, nil
}

func encodeRecord(e *Encoder, r *Record) error {
	e.WriteByte(byte(r.Op))
	switch r.Op {
	case OpReset:
		e.WriteString(r.HTML)
	case OpReplaceNode:
		e.WriteUvarint(r.NodeID)
		e.WriteString(r.HTML)
	case OpRemoveNode:
		e.WriteUvarint(r.NodeID)
	case OpInsertNode:
		e.WriteUvarint(r.ParentID)
		e.WriteSvarint(int64(r.Index))
		e.WriteUvarint(r.NodeID)
		e.WriteString(r.HTML)
	case OpSetAttr:
		e.WriteUvarint(r.NodeID)
		e.WriteString(r.Key)
		e.WriteString(r.Value)
	case OpRemoveAttr:
		e.WriteUvarint(r.NodeID)
		e.WriteString(r.Key)
	case OpSetText:
		e.WriteUvarint(r.NodeID)
		e.WriteString(r.Value)
	default:
		return unknownOp(r.Op)
	}
	return nil
}

// DecodeRecordsFrame decodes a records payload.
func DecodeRecordsFrame(payload []byte) (*RecordsFrame, error) {
	d := NewDecoder(payload)
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	n, err := d.ReadCount()
	if err != nil {
		return nil, err
	}
	rf := &RecordsFrame{Seq: seq, Records: make([]Record, n)}
	for i := range rf.Records {
		if err := decodeRecord(d, &rf.Records[i]); err != nil {
			return nil, err
		}
	}
	return rf, nil
}

func decodeRecord(d *Decoder, r *Record) error {
	op, err := d.ReadByte()
	if err != nil {
		return err
	}
	r.Op = Op(op)

	var fields []func() error
	nodeID := func() (err error) { r.NodeID, err = d.ReadUvarint(); return }
	key := func() (err error) { r.Key, err = d.ReadString(); return }
	value := func() (err error) { r.Value, err = d.ReadString(); return }
	html := func() (err error) { r.HTML, err = d.ReadString(); return }

	switch r.Op {
	case OpReset:
		fields = append(fields, html)
	case OpReplaceNode:
		fields = append(fields, nodeID, html)
	case OpRemoveNode:
		fields = append(fields, nodeID)
	case OpInsertNode:
		parent := func() (err error) { r.ParentID, err = d.ReadUvarint(); return }
		index := func() error {
			v, err := d.ReadSvarint()
			r.Index = int(v)
			return err
		}
		fields = append(fields, parent, index, nodeID, html)
	case OpSetAttr:
		fields = append(fields, nodeID, key, value)
	case OpRemoveAttr:
		fields = append(fields, nodeID, key)
	case OpSetText:
		fields = append(fields, nodeID, value)
	default:
		return unknownOp(r.Op)
	}
	for _, read := range fields {
		if err := read(); err != nil {
			return err
		}
	}
	return nil
}

func unknownOp(op Op) error {
	return vterrors.New(vterrors.CodeUnknownOp).WithDetailf("op 0x%02x", uint8(op))
}
