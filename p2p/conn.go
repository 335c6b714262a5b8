//
// conn.go
//
// Frame codec: length-prefixed JSON messages over an io.ReadWriter,
// plus the I/O byte counters a session reports in its transfer summary.
//

package p2p

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// MaxFrameSize is the largest payload (JSON-encoded, before the
// length prefix) this transport will send or accept, per spec.md §6.
const MaxFrameSize = 16 * 1024

// IOStats tracks bytes sent and received on a Conn, surfaced in the
// CLI's session transfer-stats table.
type IOStats struct {
	Sent  uint64
	Recvd uint64
}

// Conn is a framed, JSON-based duplex message stream over any
// io.ReadWriter (a net.Conn in production, an io.Pipe half in tests).
type Conn struct {
	closer io.Closer
	rw     *bufio.ReadWriter
	Stats  IOStats
}

// NewConn wraps rw as a framed Conn. If rw implements io.Closer,
// Close releases it too.
func NewConn(rw io.ReadWriter) *Conn {
	closer, _ := rw.(io.Closer)
	return &Conn{
		closer: closer,
		rw:     bufio.NewReadWriter(bufio.NewReader(rw), bufio.NewWriter(rw)),
	}
}

// Close flushes any buffered output and closes the underlying
// connection, if it is closeable.
func (c *Conn) Close() error {
	if err := c.rw.Flush(); err != nil {
		return err
	}
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// SendFrame JSON-encodes v and writes it as one length-prefixed
// frame. It returns an error if the encoded payload exceeds
// MaxFrameSize.
func (c *Conn) SendFrame(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("p2p: encode frame: %w", err)
	}
	if len(data) > MaxFrameSize {
		return fmt.Errorf("p2p: frame of %d bytes exceeds max %d", len(data), MaxFrameSize)
	}
	if err := binary.Write(c.rw, binary.BigEndian, uint32(len(data))); err != nil {
		return fmt.Errorf("p2p: write frame length: %w", err)
	}
	if _, err := c.rw.Write(data); err != nil {
		return fmt.Errorf("p2p: write frame body: %w", err)
	}
	if err := c.rw.Flush(); err != nil {
		return fmt.Errorf("p2p: flush frame: %w", err)
	}
	c.Stats.Sent += uint64(4 + len(data))
	return nil
}

// ReceiveFrame blocks for the next frame and JSON-decodes it into
// out, which should usually be a *interface{} or a pointer to the
// specific type the caller expects next.
func (c *Conn) ReceiveFrame(out interface{}) error {
	var lenBuf [4]byte
	if _, err := io.ReadFull(c.rw, lenBuf[:]); err != nil {
		return fmt.Errorf("p2p: read frame length: %w", err)
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n > MaxFrameSize {
		return fmt.Errorf("p2p: peer announced frame of %d bytes, exceeds max %d", n, MaxFrameSize)
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(c.rw, data); err != nil {
		return fmt.Errorf("p2p: read frame body: %w", err)
	}
	c.Stats.Recvd += uint64(4 + len(data))

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("p2p: decode frame: %w", err)
	}
	return nil
}
