//
// evaluator.go
//
// The Evaluator state machine: receive the garbled view, obliviously
// obtain this party's own input labels one OT session per wire,
// decrypt every gate, decode the outputs, and report them back to
// the Generator as the terminating Done message.
//

package ygc

import (
	"fmt"
	"strconv"

	"github.com/crm4042/ygc/circuit"
	"github.com/crm4042/ygc/ot"
	"github.com/crm4042/ygc/p2p"
)

// Evaluator drives one Evaluator-side YGC session. inputs maps this
// party's owned input-wire indices to their cleartext bits.
type Evaluator struct {
	node   *p2p.Node
	otNode *p2p.Node
	peer   string
	otPeer string
	params ot.Params
	inputs map[int]int
}

// NewEvaluator binds the primary and auxiliary transport endpoints
// for an Evaluator session with the given owned-wire input bits.
func NewEvaluator(addr, otAddr, peerAddr, otPeerAddr string, params ot.Params, inputs map[int]int) (*Evaluator, error) {
	node, err := p2p.NewNode(addr)
	if err != nil {
		return nil, fmt.Errorf("ygc: evaluator: %w", err)
	}
	otNode, err := p2p.NewNode(otAddr)
	if err != nil {
		node.Close()
		return nil, fmt.Errorf("ygc: evaluator: %w", err)
	}
	return &Evaluator{
		node:   node,
		otNode: otNode,
		peer:   peerAddr,
		otPeer: otPeerAddr,
		params: params,
		inputs: inputs,
	}, nil
}

// Stats returns the Evaluator's accumulated transfer byte counts.
func (e *Evaluator) Stats() Stats {
	return Stats{Primary: e.node.Stats(), OT: e.otNode.Stats()}
}

// Close releases both of the Evaluator's transport endpoints.
func (e *Evaluator) Close() error {
	err1 := e.node.Close()
	err2 := e.otNode.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// Run connects to the Generator, receives the garbled view,
// obliviously obtains every owned input label, evaluates every gate,
// and reports the decoded outputs as the session's terminating
// message, returning them to the caller too.
func (e *Evaluator) Run() (map[string]int, error) {
	if err := e.node.Connect([]string{e.node.Addr(), e.peer}); err != nil {
		return nil, fmt.Errorf("ygc: evaluator: connecting primary channel: %w", err)
	}
	if err := e.otNode.Connect([]string{e.otNode.Addr(), e.otPeer}); err != nil {
		return nil, fmt.Errorf("ygc: evaluator: connecting OT channel: %w", err)
	}

	var vm viewMsg
	raw := e.node.GetMessageAt(0)
	if err := decodeInto(raw, &vm); err != nil {
		return nil, fmt.Errorf("ygc: evaluator: decoding garbled view: %w", err)
	}
	view := vm.View

	held, err := seedHeldFromGeneratorInputs(view)
	if err != nil {
		return nil, fmt.Errorf("ygc: evaluator: %w", err)
	}

	otChannel := p2p.NewOTChannel(e.otNode, e.otPeer)

	for w, v := range e.inputs {
		if err := e.node.SendMessages(map[string]interface{}{e.peer: ChannelMsg{Kind: MsgQuery, Wire: w}}); err != nil {
			return nil, fmt.Errorf("ygc: evaluator: querying wire %d: %w", w, err)
		}

		receiver, err := ot.NewReceiver(e.params, v+1, otChannel)
		if err != nil {
			return nil, fmt.Errorf("ygc: evaluator: wire %d: %w", w, err)
		}
		secret, err := receiver.Run()
		if err != nil {
			return nil, fmt.Errorf("ygc: evaluator: OT for wire %d: %w", w, err)
		}
		lp, err := circuit.UnpackLabelPerm(secret, view.K)
		if err != nil {
			return nil, fmt.Errorf("ygc: evaluator: unpacking wire %d: %w", w, err)
		}
		held[w] = lp
	}

	outputs, err := circuit.Evaluate(view, held)
	if err != nil {
		return nil, fmt.Errorf("ygc: evaluator: evaluating circuit: %w", err)
	}

	if err := e.node.SendMessages(map[string]interface{}{e.peer: ChannelMsg{Kind: MsgDone, Outputs: outputs}}); err != nil {
		return nil, fmt.Errorf("ygc: evaluator: sending final outputs: %w", err)
	}
	return outputs, nil
}

// seedHeldFromGeneratorInputs converts the garbled view's decimal-
// string-keyed GeneratorInputs into the int-keyed held map Evaluate
// expects.
func seedHeldFromGeneratorInputs(view *circuit.GarbledView) (map[int]circuit.LabelPerm, error) {
	held := make(map[int]circuit.LabelPerm, len(view.GeneratorInputs))
	for key, lp := range view.GeneratorInputs {
		w, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("parsing generator input wire id %q: %w", key, err)
		}
		held[w] = lp
	}
	return held, nil
}
