package p2p

import "testing"

func TestFrameRoundTrip(t *testing.T) {
	a, b := Pipe()
	defer a.Close()
	defer b.Close()

	type payload struct {
		Wire int    `json:"wire"`
		Kind string `json:"kind"`
	}

	done := make(chan error, 1)
	go func() {
		done <- a.SendFrame(payload{Wire: 3, Kind: "query"})
	}()

	var got payload
	if err := b.ReceiveFrame(&got); err != nil {
		t.Fatalf("ReceiveFrame: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("SendFrame: %v", err)
	}
	if got.Wire != 3 || got.Kind != "query" {
		t.Errorf("ReceiveFrame = %+v, want {3 query}", got)
	}
}

func TestFrameRejectsOversized(t *testing.T) {
	a, b := Pipe()
	defer a.Close()
	defer b.Close()

	big := make([]byte, MaxFrameSize+100)
	for i := range big {
		big[i] = 'x'
	}
	err := a.SendFrame(string(big))
	if err == nil {
		t.Errorf("SendFrame of an oversized payload should fail")
	}
}

func TestStatsAccumulate(t *testing.T) {
	a, b := Pipe()
	defer a.Close()
	defer b.Close()

	done := make(chan error, 1)
	go func() {
		done <- a.SendFrame("hello")
	}()
	var got string
	if err := b.ReceiveFrame(&got); err != nil {
		t.Fatalf("ReceiveFrame: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("SendFrame: %v", err)
	}
	if a.Stats.Sent == 0 {
		t.Errorf("Stats.Sent should be nonzero after SendFrame")
	}
	if b.Stats.Recvd == 0 {
		t.Errorf("Stats.Recvd should be nonzero after ReceiveFrame")
	}
}
