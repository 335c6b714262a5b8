//
// main.go
//
// CLI entry point for a two-party YGC session: one process runs as
// the Generator, the other as the Evaluator, each pointed at the
// other's primary listen address. The OT auxiliary channel binds to
// the primary port + 1 on each side, per spec.md §4.8.
//

package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/markkurossi/tabulate"

	"github.com/crm4042/ygc/ot"
	"github.com/crm4042/ygc/ygc"
)

func main() {
	generator := flag.Bool("g", false, "Generator mode (default: Evaluator)")
	circName := flag.String("c", "adder", "Demonstration circuit: adder or comparator")
	input := flag.Int("i", 0, "This party's input bits, packed as an integer")
	addr := flag.String("addr", "127.0.0.1:4342", "This party's primary listen address")
	peer := flag.String("peer", "127.0.0.1:4343", "Peer's primary listen address")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if err := run(*generator, *circName, *input, *addr, *peer, *verbose); err != nil {
		log.Fatal(err)
	}
}

func run(generator bool, circName string, input int, addr, peer string, verbose bool) error {
	otAddr, err := derivedPort(addr, 1)
	if err != nil {
		return fmt.Errorf("ygc: deriving OT address: %w", err)
	}
	otPeer, err := derivedPort(peer, 1)
	if err != nil {
		return fmt.Errorf("ygc: deriving OT peer address: %w", err)
	}
	params := ot.DefaultParams()

	start := time.Now()
	var outputs map[string]int
	var stats ygc.Stats
	var role string

	if generator {
		role = "Generator"
		circ, label, err := buildGeneratorCircuit(circName, input)
		if err != nil {
			return err
		}
		if verbose {
			fmt.Printf("Circuit: %s (%s)\n", circName, label)
		}
		gen, err := ygc.NewGenerator(addr, otAddr, peer, otPeer, params, circ)
		if err != nil {
			return err
		}
		defer gen.Close()
		outputs, err = gen.Run()
		if err != nil {
			return err
		}
		stats = gen.Stats()
	} else {
		role = "Evaluator"
		inputs, err := evaluatorInputs(circName, input)
		if err != nil {
			return err
		}
		eval, err := ygc.NewEvaluator(addr, otAddr, peer, otPeer, params, inputs)
		if err != nil {
			return err
		}
		defer eval.Close()
		outputs, err = eval.Run()
		if err != nil {
			return err
		}
		stats = eval.Stats()
	}

	elapsed := time.Since(start)

	fmt.Printf("%s outputs:\n", role)
	tab := tabulate.New(tabulate.Github)
	tab.Header("Gate")
	tab.Header("Bit").SetAlign(tabulate.MR)
	for gate, bit := range outputs {
		row := tab.Row()
		row.Column(gate)
		row.Column(strconv.Itoa(bit))
	}
	tab.Print(os.Stdout)

	fmt.Printf("\nSession stats:\n")
	statsTab := tabulate.New(tabulate.Github)
	statsTab.Header("Channel")
	statsTab.Header("Sent").SetAlign(tabulate.MR)
	statsTab.Header("Received").SetAlign(tabulate.MR)
	primaryRow := statsTab.Row()
	primaryRow.Column("primary")
	primaryRow.Column(fmt.Sprintf("%d B", stats.Primary.Sent))
	primaryRow.Column(fmt.Sprintf("%d B", stats.Primary.Recvd))
	otRow := statsTab.Row()
	otRow.Column("ot")
	otRow.Column(fmt.Sprintf("%d B", stats.OT.Sent))
	otRow.Column(fmt.Sprintf("%d B", stats.OT.Recvd))
	statsTab.Print(os.Stdout)

	fmt.Printf("\nElapsed: %s\n", elapsed)
	return nil
}

// derivedPort rewrites addr's port, adding delta, keeping its host.
func derivedPort(addr string, delta int) (string, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("ygc: invalid address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", fmt.Errorf("ygc: invalid port in %q: %w", addr, err)
	}
	return net.JoinHostPort(host, strconv.Itoa(port+delta)), nil
}

