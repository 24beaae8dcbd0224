// usartx/usartx.go

// Package usartx is a zero-allocation driver for the STM32F4 USART/UART
// peripherals. It configures baud rate and framing, exposes single-poll
// Read/Write/Flush that never block, and an interrupt-driven wake contract
// (Listen/Unlisten plus HandleInterrupt) for callers that want to wait.
//
// Pin wiring is checked by the compiler: TxPin[U] and RxPin[U] values only exist
// for the (pin, peripheral, role) combinations the selected chip variant
// supports, so passing a USART2 pin to USART1 does not build.
//
// Every poll returns ErrPending when the hardware is not ready. Pending is
// advisory: the status flags follow the line, not the caller.
package usartx

import "errors"

var (
	// ErrPending reports that the hardware is not ready; poll again later or Listen.
	ErrPending = errors.New("usartx: operation would block")

	// ErrInvalidConfig is returned by Configure for a zero baud rate or a
	// zero peripheral clock.
	ErrInvalidConfig = errors.New("usartx: invalid configuration")
)

// Error is a receive error kind, derived from the status flags at read time.
type Error uint8

const (
	ErrFraming Error = iota + 1 // stop bit not found
	ErrNoise                    // noise detected on a received frame
	ErrOverrun                  // a byte arrived before the previous one was read
	ErrParity                   // parity check failed
)

func (e Error) Error() string {
	switch e {
	case ErrFraming:
		return "usartx: framing error"
	case ErrNoise:
		return "usartx: noise error"
	case ErrOverrun:
		return "usartx: overrun"
	case ErrParity:
		return "usartx: parity error"
	}
	return "usartx: unknown error"
}

// Waker is invoked by HandleInterrupt when a listened event fires. Wake runs
// with interrupts disabled: it must not block and must not call back into this
// package.
type Waker interface{ Wake() }

// WakerFunc adapts a plain function to Waker.
type WakerFunc func()

func (f WakerFunc) Wake() { f() }

// Signal is a coalescing wake-up channel. Many wakes before a receive collapse
// into one; receivers must re-poll after waking.
type Signal chan struct{}

// NewSignal returns a Signal ready for use.
func NewSignal() Signal { return make(Signal, 1) }

// Wake performs a non-blocking send.
func (s Signal) Wake() {
	select {
	case s <- struct{}{}:
	default:
	}
}

// drain discards a stale wake.
func (s Signal) drain() {
	select {
	case <-s:
	default:
	}
}

// Event selects a raw interrupt source for Serial.Listen.
type Event uint8

const (
	EventRxne Event = iota // data received
	EventTxe               // transmit register empty
	EventIdle              // idle line detected
)

func (e Event) cr1Bit() uint32 {
	switch e {
	case EventRxne:
		return cr1RXNEIE
	case EventTxe:
		return cr1TXEIE
	case EventIdle:
		return cr1IDLEIE
	}
	return 0
}
