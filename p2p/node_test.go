package p2p

import (
	"testing"
	"time"
)

func TestNodeConnectAndSendMessages(t *testing.T) {
	nodeA, err := NewNode("127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewNode a: %v", err)
	}
	defer nodeA.Close()

	nodeB, err := NewNode("127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewNode b: %v", err)
	}
	defer nodeB.Close()

	addrA := nodeA.listener.Addr().String()
	addrB := nodeB.listener.Addr().String()
	nodeA.addr = addrA
	nodeB.addr = addrB

	errCh := make(chan error, 2)
	go func() { errCh <- nodeA.Connect([]string{addrA, addrB}) }()
	go func() { errCh <- nodeB.Connect([]string{addrA, addrB}) }()

	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			t.Fatalf("Connect: %v", err)
		}
	}

	if err := nodeA.SendMessages(map[string]interface{}{addrB: "hello from A"}); err != nil {
		t.Fatalf("SendMessages: %v", err)
	}

	got := nodeB.GetMessageAt(0)
	if got != "hello from A" {
		t.Errorf("GetMessageAt(0) = %v, want %q", got, "hello from A")
	}
}

func TestNodeStatsTracksSentAndRecvd(t *testing.T) {
	nodeA, err := NewNode("127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewNode a: %v", err)
	}
	defer nodeA.Close()

	nodeB, err := NewNode("127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewNode b: %v", err)
	}
	defer nodeB.Close()

	addrA := nodeA.listener.Addr().String()
	addrB := nodeB.listener.Addr().String()
	nodeA.addr = addrA
	nodeB.addr = addrB

	errCh := make(chan error, 2)
	go func() { errCh <- nodeA.Connect([]string{addrA, addrB}) }()
	go func() { errCh <- nodeB.Connect([]string{addrA, addrB}) }()
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			t.Fatalf("Connect: %v", err)
		}
	}

	if err := nodeA.SendMessages(map[string]interface{}{addrB: "stats probe"}); err != nil {
		t.Fatalf("SendMessages: %v", err)
	}
	nodeB.GetMessageAt(0)

	if nodeA.Stats().Sent == 0 {
		t.Error("Stats().Sent = 0 after sending a message, want > 0")
	}
	if nodeB.Stats().Recvd == 0 {
		t.Error("Stats().Recvd = 0 after receiving a message, want > 0")
	}
}

func TestNodeSelfAddressedLoopsBack(t *testing.T) {
	node, err := NewNode("127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	defer node.Close()
	node.addr = node.listener.Addr().String()

	if err := node.SendMessages(map[string]interface{}{node.addr: "loopback"}); err != nil {
		t.Fatalf("SendMessages: %v", err)
	}

	resultCh := make(chan interface{}, 1)
	go func() {
		resultCh <- node.GetMessageAt(0)
	}()

	select {
	case got := <-resultCh:
		if got != "loopback" {
			t.Errorf("GetMessageAt(0) = %v, want %q", got, "loopback")
		}
	case <-time.After(time.Second):
		t.Fatal("GetMessageAt blocked on a self-addressed message")
	}
}

func TestGetMessageAtBlocksUntilArrival(t *testing.T) {
	node, err := NewNode("127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	defer node.Close()
	node.addr = node.listener.Addr().String()

	resultCh := make(chan interface{}, 1)
	go func() {
		resultCh <- node.GetMessageAt(0)
	}()

	select {
	case <-resultCh:
		t.Fatal("GetMessageAt returned before any message arrived")
	case <-time.After(50 * time.Millisecond):
	}

	node.appendMessage("arrived")
	select {
	case got := <-resultCh:
		if got != "arrived" {
			t.Errorf("GetMessageAt = %v, want %q", got, "arrived")
		}
	case <-time.After(time.Second):
		t.Fatal("GetMessageAt never returned after message arrived")
	}
}
