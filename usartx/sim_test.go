package usartx

import (
	"sync"
	"testing"
	"time"
)

// Test-side model of the silicon around the host register shim.

// resetPeripheral puts U back to its power-on state and forgets any context.
func resetPeripheral[U Instance](t *testing.T) *usart {
	t.Helper()
	d := descOf[U]()
	s := disableInterrupts()
	d.ctx = intrContext{}
	r := d.regs
	r.SR.Set(srReset)
	r.DR.Set(0)
	tdrOf(r).Set(0)
	r.BRR.Set(0)
	r.CR1.Set(0)
	r.CR2.Set(0)
	r.CR3.Set(0)
	r.GTPR.Set(0)
	d.enable.ClearBits(d.enableBit)
	bit := uint32(1) << (d.irq & 0x1f)
	nvicEnabled[d.irq>>5].ClearBits(bit)
	nvicPending[d.irq>>5].ClearBits(bit)
	restoreInterrupts(s)
	for i := range pinMux {
		pinMux[i].Set(0)
	}
	return d
}

// fire emulates the NVIC: if an enabled source is active it pends the line
// and runs the handler. It reports whether the handler ran.
func fire[U Instance]() bool {
	d := descOf[U]()
	sr, cr1 := d.regs.SR.Get(), d.regs.CR1.Get()
	active := (sr&srRXNE != 0 && cr1&cr1RXNEIE != 0) ||
		(sr&srTXE != 0 && cr1&cr1TXEIE != 0) ||
		(sr&srTC != 0 && cr1&cr1TCIE != 0) ||
		(sr&srIDLE != 0 && cr1&cr1IDLEIE != 0)
	if !active {
		return false
	}
	nvicPend(d.irq)
	HandleInterrupt[U]()
	return true
}

// arrive latches b into DR with RXNE and any extra status bits.
func arrive[U Instance](b byte, extra uint32) {
	r := descOf[U]().regs
	r.DR.Set(uint32(b))
	r.SR.SetBits(srRXNE | extra)
}

// occupyTx makes the transmitter busy: TXE and TC clear.
func occupyTx[U Instance]() {
	descOf[U]().regs.SR.ClearBits(srTXE | srTC)
}

// countingWaker records how often it was woken.
type countingWaker struct {
	mu sync.Mutex
	n  int
}

func (w *countingWaker) Wake() {
	w.mu.Lock()
	w.n++
	w.mu.Unlock()
}

func (w *countingWaker) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.n
}

// transmitter drains DR the way the shift register would, firing the
// interrupt after each byte. stop ends it and returns everything sent.
func transmitter[U Instance]() (stop func() []byte) {
	r := descOf[U]().regs
	done := make(chan struct{})
	result := make(chan []byte, 1)
	go func() {
		var out []byte
		for {
			select {
			case <-done:
				result <- out
				return
			default:
			}
			if !r.SR.HasBits(srTXE) {
				out = append(out, byte(tdrOf(r).Get()))
				r.SR.SetBits(srTXE | srTC)
			}
			fire[U]()
			time.Sleep(50 * time.Microsecond)
		}
	}()
	return func() []byte {
		close(done)
		return <-result
	}
}

// receiver feeds data one byte at a time, waiting for the previous byte to be
// consumed and for the receiver interrupt to be armed before each one.
func receiver[U Instance](t *testing.T, data []byte) (wait func()) {
	r := descOf[U]().regs
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, b := range data {
			deadline := time.Now().Add(time.Second)
			for r.SR.HasBits(srRXNE) || !r.CR1.HasBits(cr1RXNEIE) {
				if time.Now().After(deadline) {
					return
				}
				time.Sleep(50 * time.Microsecond)
			}
			arrive[U](b, 0)
			fire[U]()
		}
	}()
	return func() {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("receiver did not finish")
		}
	}
}
