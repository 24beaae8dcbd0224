// usartx/port.go

package usartx

import (
	"context"

	"tinygo.org/x/drivers"
)

// Port turns a Tx/Rx pair into blocking byte-stream I/O by parking on the
// interrupt wake contract instead of spinning. One goroutine may read while
// another writes; two concurrent readers (or writers) are not supported.
//
// Port satisfies drivers.UART, so TinyGo device drivers can sit on top of it.
type Port[U Instance] struct {
	tx    Tx[U]
	rx    Rx[U]
	rxSig Signal
	txSig Signal
}

var _ drivers.UART = (*Port[USART2])(nil)

// NewPort wraps the halves returned by Serial.Split.
func NewPort[U Instance](tx Tx[U], rx Rx[U]) *Port[U] {
	return &Port[U]{tx: tx, rx: rx, rxSig: NewSignal(), txSig: NewSignal()}
}

// RecvByteContext blocks for a single byte, a receive error, or until ctx is done.
func (p *Port[U]) RecvByteContext(ctx context.Context) (byte, error) {
	for {
		b, err := p.rx.Read()
		if err != ErrPending {
			return b, err
		}
		p.rx.Listen(p.rxSig)
		// Re-check after arming: a byte that landed between the poll and
		// Listen must not be waited for.
		if b, err = p.rx.Read(); err != ErrPending {
			p.rx.Unlisten()
			p.rxSig.drain()
			return b, err
		}
		select {
		case <-p.rxSig:
			// re-poll; the ISR has already disarmed RXNE
		case <-ctx.Done():
			p.rx.Unlisten()
			p.rxSig.drain()
			return 0, ctx.Err()
		}
	}
}

// SendByteContext blocks until b is accepted by the transmit register or ctx is done.
func (p *Port[U]) SendByteContext(ctx context.Context, b byte) error {
	return p.waitTx(ctx, func() error { return p.tx.Write(b) })
}

// FlushContext blocks until the transmitter is idle (TC) or ctx is done.
func (p *Port[U]) FlushContext(ctx context.Context) error {
	return p.waitTx(ctx, p.tx.Flush)
}

func (p *Port[U]) waitTx(ctx context.Context, poll func() error) error {
	for {
		err := poll()
		if err != ErrPending {
			return err
		}
		p.tx.Listen(p.txSig)
		if err = poll(); err != ErrPending {
			p.tx.Unlisten()
			p.txSig.drain()
			return err
		}
		select {
		case <-p.txSig:
		case <-ctx.Done():
			p.tx.Unlisten()
			p.txSig.drain()
			return ctx.Err()
		}
	}
}

// Read implements io.Reader. It blocks until at least one byte is available,
// then returns what is immediately readable without blocking again. A receive
// error ends the read with the bytes gathered so far.
func (p *Port[U]) Read(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	b, err := p.RecvByteContext(context.Background())
	if err != nil {
		return 0, err
	}
	buf[0] = b
	n := 1
	for n < len(buf) {
		b, err := p.rx.Read()
		if err == ErrPending {
			break
		}
		if err != nil {
			return n, err
		}
		buf[n] = b
		n++
	}
	return n, nil
}

// ReadByte polls once; it returns ErrPending when nothing is waiting.
func (p *Port[U]) ReadByte() (byte, error) { return p.rx.Read() }

// Buffered reports 1 when a received byte is waiting, 0 otherwise.
func (p *Port[U]) Buffered() int {
	if descOf[U]().regs.SR.HasBits(srRXNE) {
		return 1
	}
	return 0
}

// Write implements io.Writer. It blocks until every byte has been accepted by
// the transmit register. It does not wait for the line to drain; use Flush.
func (p *Port[U]) Write(buf []byte) (int, error) {
	for i, b := range buf {
		if err := p.SendByteContext(context.Background(), b); err != nil {
			return i, err
		}
	}
	return len(buf), nil
}

// WriteByte writes a single byte with the same blocking behaviour as Write.
func (p *Port[U]) WriteByte(b byte) error {
	return p.SendByteContext(context.Background(), b)
}

// WriteString writes s without converting it to a byte slice.
func (p *Port[U]) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if err := p.SendByteContext(context.Background(), s[i]); err != nil {
			return i, err
		}
	}
	return len(s), nil
}

// Flush blocks until the last byte is on the wire.
func (p *Port[U]) Flush() error {
	return p.FlushContext(context.Background())
}
