// usartx/config.go

package usartx

import "golang.org/x/exp/constraints"

// WordLength is the number of data bits per frame (including parity).
type WordLength uint8

const (
	DataBits8 WordLength = iota
	DataBits9
)

// Parity defines the parity setting used for UART communication.
type Parity uint8

const (
	// ParityNone disables parity generation and checking (the most common setting).
	ParityNone Parity = iota
	// ParityEven sets even parity (total number of 1 bits is even).
	ParityEven
	// ParityOdd sets odd parity (total number of 1 bits is odd).
	ParityOdd
)

// StopBits is the stop-bit length. UART4/UART5 on the F405/F407/F469 class
// only implement 1 and 2; see stopField.
type StopBits uint8

const (
	StopBits1 StopBits = iota
	StopBits0p5
	StopBits2
	StopBits1p5
)

// Config describes the line settings. It is consumed once by Configure.
type Config struct {
	BaudRate   uint32 // bits per second, must be non-zero
	WordLength WordLength
	Parity     Parity
	StopBits   StopBits
}

// DefaultConfig returns 19200 baud, 8 data bits, no parity, 1 stop bit.
func DefaultConfig() Config {
	return Config{BaudRate: 19200}
}

func (c Config) WithBaudRate(bps uint32) Config {
	c.BaudRate = bps
	return c
}

func (c Config) WithWordLength(w WordLength) Config {
	c.WordLength = w
	return c
}

func (c Config) WithParity(p Parity) Config {
	c.Parity = p
	return c
}

func (c Config) WithStopBits(s StopBits) Config {
	c.StopBits = s
	return c
}

// Clocks carries the APB bus clocks in Hz, as produced by the clock tree setup.
type Clocks struct {
	PCLK1 uint32
	PCLK2 uint32
}

func (c Clocks) forBus(b bus) uint32 {
	if b == apb2 {
		return c.PCLK2
	}
	return c.PCLK1
}

// roundDiv divides rounding half up. The addition happens before the
// truncating division.
func roundDiv[T constraints.Unsigned](n, d T) T {
	return (n + d/2) / d
}

// baudDivisor is the BRR value for pclk and baud with 16x oversampling.
func baudDivisor(pclk, baud uint32) uint32 {
	return roundDiv(pclk, baud)
}

// stopField encodes s for CR2.STOP. Peripherals with the reduced set round
// 0.5 up to 1 and 1.5 up to 2.
func stopField(s StopBits, reduced bool) uint32 {
	switch s {
	case StopBits0p5:
		if reduced {
			return stop1
		}
		return stop0p5
	case StopBits2:
		return stop2
	case StopBits1p5:
		if reduced {
			return stop2
		}
		return stop1p5
	}
	return stop1
}
