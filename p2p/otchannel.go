//
// otchannel.go
//
// Adapts a Node to the ot.Channel interface: a single OT session's
// three rounds are just the next three messages addressed to/from one
// peer on this Node.
//

package p2p

import (
	"encoding/json"
	"fmt"
)

// OTChannel is an ot.Channel backed by a Node talking to one peer. It
// is not imported by the ot package (ot defines Channel itself to
// avoid a dependency on p2p); OTChannel satisfies that interface
// structurally.
type OTChannel struct {
	node     *Node
	peer     string
	nextRecv int
}

// NewOTChannel returns a Channel to peer over node. Receive reads
// node's buffer in order starting at index 0, so a single OTChannel
// serves every OT session run over node, one after another.
func NewOTChannel(node *Node, peer string) *OTChannel {
	return &OTChannel{node: node, peer: peer}
}

// Send implements ot.Channel.
func (c *OTChannel) Send(v interface{}) error {
	return c.node.SendMessages(map[string]interface{}{c.peer: v})
}

// Receive implements ot.Channel by re-encoding the next buffered
// message and decoding it into out. Node's buffer already holds
// generically-decoded JSON (interface{} trees); round-tripping
// through json.Marshal/Unmarshal recovers the caller's concrete type.
func (c *OTChannel) Receive(out interface{}) error {
	msg := c.node.GetMessageAt(c.nextRecv)
	c.nextRecv++

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("p2p: re-encode buffered message: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("p2p: decode buffered message: %w", err)
	}
	return nil
}
