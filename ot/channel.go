//
// channel.go
//
// The narrow duplex-messaging contract the Parakh sub-protocol needs.
// Defined here, not in p2p, so that ot has no import dependency on
// the transport package; p2p.OTChannel satisfies this interface
// structurally.
//

package ot

// Channel is a single duplex message stream between a Sender and a
// Receiver running one OT session. Send marshals v onto the wire;
// Receive blocks for the next message and unmarshals it into out,
// which must be a pointer to the type the caller expects for that
// protocol round (the round structure, not the channel, fixes what
// type arrives next).
type Channel interface {
	Send(v interface{}) error
	Receive(out interface{}) error
}
