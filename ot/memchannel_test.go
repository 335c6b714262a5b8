package ot

import (
	"encoding/json"
	"fmt"
)

// memChannel is an in-memory Channel implementation for tests: two
// memChannels share a pair of unbuffered Go channels, one per
// direction, so Send on one side is Receive on the other. Messages
// are round-tripped through JSON, the same encoding the real
// transport uses, so a wire-format bug shows up in tests too.
type memChannel struct {
	out chan []byte
	in  chan []byte
}

func newMemChannelPair() (a, b *memChannel) {
	c1 := make(chan []byte)
	c2 := make(chan []byte)
	a = &memChannel{out: c1, in: c2}
	b = &memChannel{out: c2, in: c1}
	return a, b
}

func (c *memChannel) Send(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ot: memchannel marshal: %w", err)
	}
	c.out <- data
	return nil
}

func (c *memChannel) Receive(out interface{}) error {
	data, ok := <-c.in
	if !ok {
		return fmt.Errorf("ot: memchannel closed")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("ot: memchannel unmarshal: %w", err)
	}
	return nil
}
