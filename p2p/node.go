//
// node.go
//
// Point-to-point duplex messaging node: each Node binds a listening
// endpoint, connects to a set of peers, and exposes an ordered,
// blocking message buffer fed by one background reader goroutine per
// peer connection.
//

// Package p2p implements the point-to-point messaging transport the
// YGC orchestrator and OT sub-protocol run over: a Node per party,
// framed JSON messages, and a blocking ordered message buffer.
package p2p

import (
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Node is one party's point-to-point messaging endpoint. It accepts
// inbound connections on addr, dials outbound connections to its
// peers, and merges everything any peer sends (plus anything the
// Node sends to itself) into a single ordered, blocking buffer.
type Node struct {
	addr     string
	listener net.Listener

	mu      sync.Mutex
	cond    *sync.Cond
	clients map[string]*Conn // outbound connections, by peer addr
	stop    bool

	bufMu sync.Mutex
	buf   []interface{}

	sentBytes  uint64
	recvdBytes uint64
}

// NewNode binds a listening socket at addr.
func NewNode(addr string) (*Node, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("p2p: listen %s: %w", addr, err)
	}
	n := &Node{
		addr:     addr,
		listener: listener,
		clients:  make(map[string]*Conn),
	}
	n.cond = sync.NewCond(&n.bufMu)
	return n, nil
}

// Addr returns the address this Node is bound to.
func (n *Node) Addr() string {
	return n.addr
}

// Connect dials every address in peers and accepts one inbound
// connection per peer, blocking until all pairs are mutually
// connected. An address equal to this Node's own address is skipped
// (self-addressed traffic loops back through the local buffer
// instead, per SendMessages).
func (n *Node) Connect(peers []string) error {
	var wg sync.WaitGroup
	errCh := make(chan error, 2*len(peers))

	for _, peer := range peers {
		if peer == n.addr {
			continue
		}
		peer := peer

		wg.Add(2)
		go func() {
			defer wg.Done()
			conn, err := n.listener.Accept()
			if err != nil {
				errCh <- fmt.Errorf("p2p: accept: %w", err)
				return
			}
			go n.readLoop(NewConn(conn))
		}()
		go func() {
			defer wg.Done()
			conn, err := dialWithRetry(peer)
			if err != nil {
				errCh <- fmt.Errorf("p2p: dial %s: %w", peer, err)
				return
			}
			c := NewConn(conn)
			n.mu.Lock()
			n.clients[peer] = c
			n.mu.Unlock()
		}()
	}
	wg.Wait()

	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// dialWithRetry dials addr, retrying every 100ms on any dial error
// (the peer may not have started listening yet) for up to 30 seconds.
func dialWithRetry(addr string) (net.Conn, error) {
	deadline := time.Now().Add(30 * time.Second)
	for {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// readLoop drains framed JSON messages from conn into the local
// buffer until the connection closes.
func (n *Node) readLoop(conn *Conn) {
	for {
		var payload interface{}
		before := conn.Stats.Recvd
		if err := conn.ReceiveFrame(&payload); err != nil {
			log.Printf("p2p %s: peer read stopped: %v", n.addr, err)
			return
		}
		atomic.AddUint64(&n.recvdBytes, conn.Stats.Recvd-before)
		n.appendMessage(payload)
	}
}

func (n *Node) appendMessage(payload interface{}) {
	n.bufMu.Lock()
	n.buf = append(n.buf, payload)
	n.cond.Broadcast()
	n.bufMu.Unlock()
}

// SendMessages delivers one payload per destination address.
// Self-addressed payloads loop back into the local buffer instead of
// going out over the network.
func (n *Node) SendMessages(messages map[string]interface{}) error {
	for addr, payload := range messages {
		if addr == n.addr {
			n.appendMessage(payload)
			continue
		}
		n.mu.Lock()
		conn, ok := n.clients[addr]
		n.mu.Unlock()
		if !ok {
			return fmt.Errorf("p2p: no connection to peer %s", addr)
		}
		before := conn.Stats.Sent
		if err := conn.SendFrame(payload); err != nil {
			return fmt.Errorf("p2p: send to %s: %w", addr, err)
		}
		atomic.AddUint64(&n.sentBytes, conn.Stats.Sent-before)
	}
	return nil
}

// Stats returns this Node's aggregate bytes sent and received across
// every peer connection, for a session's timing/transfer summary.
func (n *Node) Stats() IOStats {
	return IOStats{
		Sent:  atomic.LoadUint64(&n.sentBytes),
		Recvd: atomic.LoadUint64(&n.recvdBytes),
	}
}

// GetMessageAt returns the message at the given 0-indexed position in
// receipt order, blocking until it has arrived.
func (n *Node) GetMessageAt(index int) interface{} {
	n.bufMu.Lock()
	defer n.bufMu.Unlock()
	for len(n.buf) <= index {
		n.cond.Wait()
	}
	return n.buf[index]
}

// Close sets the Node's stop flag and releases the listener and every
// outbound client connection. It does not close the inbound
// connections accepted by Connect, and the reader goroutines do not
// consult the stop flag: each reader stops only when its peer closes
// its end of the connection.
func (n *Node) Close() error {
	n.mu.Lock()
	n.stop = true
	clients := n.clients
	n.clients = nil
	n.mu.Unlock()

	var firstErr error
	if err := n.listener.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	for _, c := range clients {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
