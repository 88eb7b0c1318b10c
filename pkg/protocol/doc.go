// Package protocol implements the binary wire format spoken between the
// live-sync server and its browser client.
//
// Every message is a Frame: a 6-byte header (type, flags, payload length)
// followed by the payload. Integers inside payloads are varints and strings
// are length-prefixed UTF-8.
//
// Server to client:
//
//   - FrameHello carries the protocol version and the ID attribute the
//     client uses to locate nodes.
//   - FrameRecords carries a RecordsFrame: a sequence number and the ordered
//     records produced by one tree update.
//   - FrameError carries an ErrorMessage.
//
// Client to server:
//
//   - FrameEvent carries a ClientEvent naming the node, the event type and
//     an opaque detail string.
package protocol
