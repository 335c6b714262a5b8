package ot

import (
	"math/big"
	"math/rand"
	"testing"
)

// runOT wires a Sender and Receiver over an in-memory channel pair
// and runs both legs concurrently, returning the Receiver's result.
func runOT(t *testing.T, params Params, s1, s2 *big.Int, choice int) *big.Int {
	t.Helper()

	senderCh, receiverCh := newMemChannelPair()

	sender, err := NewSender(params, s1, s2, senderCh)
	if err != nil {
		t.Fatalf("NewSender: %v", err)
	}
	receiver, err := NewReceiver(params, choice, receiverCh)
	if err != nil {
		t.Fatalf("NewReceiver: %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- sender.Run() }()

	result, rerr := receiver.Run()
	if rerr != nil {
		t.Fatalf("Receiver.Run: %v", rerr)
	}
	if serr := <-errCh; serr != nil {
		t.Fatalf("Sender.Run: %v", serr)
	}
	return result
}

func TestOTToyScenarioChoice1(t *testing.T) {
	params := ToyParams()
	got := runOT(t, params, big.NewInt(176), big.NewInt(31), 1)
	if got.Cmp(big.NewInt(176)) != 0 {
		t.Errorf("choice=1: got %v, want 176", got)
	}
}

func TestOTToyScenarioChoice2(t *testing.T) {
	params := ToyParams()
	got := runOT(t, params, big.NewInt(176), big.NewInt(31), 2)
	if got.Cmp(big.NewInt(31)) != 0 {
		t.Errorf("choice=2: got %v, want 31", got)
	}
}

func TestOTInvalidChoice(t *testing.T) {
	_, receiverCh := newMemChannelPair()
	params := ToyParams()
	_, err := NewReceiver(params, 3, receiverCh)
	if err != ErrInvalidChoice {
		t.Errorf("NewReceiver(choice=3) error = %v, want ErrInvalidChoice", err)
	}
}

func TestOTRandomSecretsBothChoices(t *testing.T) {
	params := ToyParams()
	r := rand.New(rand.NewSource(3))

	for i := 0; i < 20; i++ {
		s1 := big.NewInt(int64(r.Intn(2000) + 1))
		s2 := big.NewInt(int64(r.Intn(2000) + 1))

		got1 := runOT(t, params, s1, s2, 1)
		if got1.Cmp(s1) != 0 {
			t.Errorf("trial %d choice=1: got %v, want %v", i, got1, s1)
		}
		got2 := runOT(t, params, s1, s2, 2)
		if got2.Cmp(s2) != 0 {
			t.Errorf("trial %d choice=2: got %v, want %v", i, got2, s2)
		}
	}
}

func TestDefaultParamsValidate(t *testing.T) {
	params := DefaultParams()
	if err := params.Validate(); err != nil {
		t.Errorf("DefaultParams().Validate() = %v, want nil", err)
	}
}

func TestParamsValidateRejectsBadOrdering(t *testing.T) {
	params := Params{
		Prime:     big.NewInt(2903),
		Generator: big.NewInt(5),
		X1:        big.NewInt(700),
		X2:        big.NewInt(1500), // x2 > x1, invalid
	}
	if err := params.Validate(); err != ErrInvalidParams {
		t.Errorf("Validate() = %v, want ErrInvalidParams", err)
	}
}
