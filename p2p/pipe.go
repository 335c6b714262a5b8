//
// pipe.go
//
// An in-memory Conn pair for tests: anything sent to one endpoint is
// received from the other, with no real socket involved.
//

package p2p

import "io"

// Pipe returns two Conns backed by a pair of in-memory pipes: a frame
// sent on one is received on the other, and vice versa.
func Pipe() (*Conn, *Conn) {
	var p0, p1 halfDuplex

	p0.r, p1.w = io.Pipe()
	p1.r, p0.w = io.Pipe()

	return NewConn(&p0), NewConn(&p1)
}

type halfDuplex struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (p *halfDuplex) Close() error {
	if err := p.r.Close(); err != nil {
		return err
	}
	return p.w.Close()
}

func (p *halfDuplex) Read(data []byte) (int, error) {
	return p.r.Read(data)
}

func (p *halfDuplex) Write(data []byte) (int, error) {
	return p.w.Write(data)
}
