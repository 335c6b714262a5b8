//
// channel.go
//
// The main YGC channel's message shapes: the Generator's garbled
// view and a tagged Evaluator->Generator union replacing the
// original's "read an integer, or else treat it as the result"
// informal terminator with an explicit Query/Done variant.
//

package ygc

import "github.com/crm4042/ygc/circuit"

// MsgKind tags a ChannelMsg's meaning.
type MsgKind int

const (
	// MsgQuery asks the Generator to run one OT session for the wire
	// named by Wire, on the session's auxiliary OT channel.
	MsgQuery MsgKind = iota
	// MsgDone carries the Evaluator's final decoded outputs and ends
	// the Generator's OT loop.
	MsgDone
)

// ChannelMsg is the only message shape the Evaluator sends on the
// main channel once it holds the garbled view: a typed union instead
// of "an integer, or else something else".
type ChannelMsg struct {
	Kind    MsgKind        `json:"kind"`
	Wire    int            `json:"wire,omitempty"`
	Outputs map[string]int `json:"outputs,omitempty"`
}

// viewMsg wraps a GarbledView as the Generator's sole message on the
// main channel, sent once at session start.
type viewMsg struct {
	View *circuit.GarbledView `json:"view"`
}
