//
// generator.go
//
// The Generator state machine: build and garble a circuit, hand the
// garbled view to the Evaluator, then answer one OT session per
// query until the Evaluator reports its final outputs.
//

package ygc

import (
	"fmt"

	"github.com/crm4042/ygc/circuit"
	"github.com/crm4042/ygc/ot"
	"github.com/crm4042/ygc/p2p"
)

// Stats reports the session's aggregate transfer bytes across both
// the primary and the OT auxiliary channel.
type Stats struct {
	Primary p2p.IOStats
	OT      p2p.IOStats
}

// Generator drives one Generator-side YGC session over a primary
// channel (the garbled view and the Query/Done protocol) and an
// auxiliary channel (one OT session per Evaluator-owned input wire).
// It owns both Nodes for its lifetime.
type Generator struct {
	node   *p2p.Node
	otNode *p2p.Node
	peer   string
	otPeer string
	params ot.Params

	circuit *circuit.Circuit
}

// NewGenerator binds the primary and auxiliary transport endpoints
// for a Generator session over circ, which must already carry this
// party's SetInput assignment.
func NewGenerator(addr, otAddr, peerAddr, otPeerAddr string, params ot.Params, circ *circuit.Circuit) (*Generator, error) {
	node, err := p2p.NewNode(addr)
	if err != nil {
		return nil, fmt.Errorf("ygc: generator: %w", err)
	}
	otNode, err := p2p.NewNode(otAddr)
	if err != nil {
		node.Close()
		return nil, fmt.Errorf("ygc: generator: %w", err)
	}
	return &Generator{
		node:    node,
		otNode:  otNode,
		peer:    peerAddr,
		otPeer:  otPeerAddr,
		params:  params,
		circuit: circ,
	}, nil
}

// Stats returns the Generator's accumulated transfer byte counts.
func (g *Generator) Stats() Stats {
	return Stats{Primary: g.node.Stats(), OT: g.otNode.Stats()}
}

// Close releases both of the Generator's transport endpoints.
func (g *Generator) Close() error {
	err1 := g.node.Close()
	err2 := g.otNode.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// Run connects to the Evaluator, sends the garbled view, answers OT
// queries until the Evaluator reports Done, and returns its outputs.
func (g *Generator) Run() (map[string]int, error) {
	if err := g.node.Connect([]string{g.node.Addr(), g.peer}); err != nil {
		return nil, fmt.Errorf("ygc: generator: connecting primary channel: %w", err)
	}
	if err := g.otNode.Connect([]string{g.otNode.Addr(), g.otPeer}); err != nil {
		return nil, fmt.Errorf("ygc: generator: connecting OT channel: %w", err)
	}

	view, err := g.circuit.Garble()
	if err != nil {
		return nil, fmt.Errorf("ygc: generator: garbling circuit: %w", err)
	}
	if err := g.node.SendMessages(map[string]interface{}{g.peer: viewMsg{View: view}}); err != nil {
		return nil, fmt.Errorf("ygc: generator: sending garbled view: %w", err)
	}

	otChannel := p2p.NewOTChannel(g.otNode, g.otPeer)

	for i := 0; ; i++ {
		var msg ChannelMsg
		raw := g.node.GetMessageAt(i)
		if err := decodeInto(raw, &msg); err != nil {
			return nil, fmt.Errorf("ygc: generator: decoding channel message %d: %w", i, err)
		}

		switch msg.Kind {
		case MsgQuery:
			if err := g.answerQuery(otChannel, msg.Wire); err != nil {
				return nil, fmt.Errorf("ygc: generator: answering OT query for wire %d: %w", msg.Wire, err)
			}
		case MsgDone:
			return msg.Outputs, nil
		default:
			return nil, fmt.Errorf("ygc: generator: unknown channel message kind %d", msg.Kind)
		}
	}
}

// answerQuery runs one OT-Sender session over otChannel, offering
// wire's two (label, p) secrets packed as (K+1)-bit integers.
func (g *Generator) answerQuery(otChannel ot.Channel, wire int) error {
	w := g.circuit.Wires[wire]
	k := g.circuit.K

	secret1, err := circuit.PackLabelPerm(circuit.LabelPerm{Label: w.Label(0), P: w.Perm(0)}, k)
	if err != nil {
		return err
	}
	secret2, err := circuit.PackLabelPerm(circuit.LabelPerm{Label: w.Label(1), P: w.Perm(1)}, k)
	if err != nil {
		return err
	}

	sender, err := ot.NewSender(g.params, secret1, secret2, otChannel)
	if err != nil {
		return err
	}
	return sender.Run()
}
