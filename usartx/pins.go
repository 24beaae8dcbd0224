// usartx/pins.go

package usartx

// Pin is a GPIO identifier numbered port*16+line, the same numbering TinyGo's
// machine package uses on STM32.
type Pin uint8

// NoPin marks an uncommitted role.
const NoPin Pin = 0xff

const (
	portA Pin = iota * 16
	portB
	portC
	portD
	portE
	portF
	portG
)

// Pins that carry a USART/UART signal on at least one supported variant.
const (
	PA0  = portA + 0
	PA1  = portA + 1
	PA2  = portA + 2
	PA3  = portA + 3
	PA8  = portA + 8
	PA9  = portA + 9
	PA10 = portA + 10
	PA11 = portA + 11
	PA12 = portA + 12
	PA15 = portA + 15
	PB3  = portB + 3
	PB6  = portB + 6
	PB7  = portB + 7
	PB10 = portB + 10
	PB11 = portB + 11
	PC5  = portC + 5
	PC6  = portC + 6
	PC7  = portC + 7
	PC10 = portC + 10
	PC11 = portC + 11
	PC12 = portC + 12
	PD2  = portD + 2
	PD5  = portD + 5
	PD6  = portD + 6
	PD8  = portD + 8
	PD9  = portD + 9
	PE0  = portE + 0
	PE1  = portE + 1
	PE7  = portE + 7
	PE8  = portE + 8
	PF6  = portF + 6
	PF7  = portF + 7
	PG9  = portG + 9
	PG14 = portG + 14
)

func (p Pin) String() string {
	if p == NoPin || p >= 7*16 {
		return "NoPin"
	}
	line := uint8(p % 16)
	s := []byte{'P', 'A' + byte(p/16)}
	if line >= 10 {
		s = append(s, '1')
		line -= 10
	}
	return string(append(s, '0'+line))
}

// Alternate function numbers used by the USARTs.
const (
	af7 uint8 = 7 // USART1..3
	af8 uint8 = 8 // UART4..8, USART6
)

// Role markers. They make TxPin[U], RxPin[U], Tx[U] and Rx[U] differ in
// underlying type per peripheral and per role, so none converts into another.
type (
	txRole struct{}
	rxRole struct{}
)

// TxPin is a pin that may drive the TX signal of peripheral U. Non-empty values
// exist only in this package's pin tables; the zero value means no TX pin.
type TxPin[U Instance] struct {
	_   [0]U
	_   [0]txRole
	pin Pin
	af  uint8
	ok  bool
}

// RxPin is a pin that may carry the RX signal of peripheral U. Non-empty values
// exist only in this package's pin tables; the zero value means no RX pin.
type RxPin[U Instance] struct {
	_   [0]U
	_   [0]rxRole
	pin Pin
	af  uint8
	ok  bool
}

// NoTx is the placeholder for a receive-only port.
func NoTx[U Instance]() TxPin[U] { return TxPin[U]{} }

// NoRx is the placeholder for a transmit-only port.
func NoRx[U Instance]() RxPin[U] { return RxPin[U]{} }

func txPin[U Instance](p Pin, af uint8) TxPin[U] { return TxPin[U]{pin: p, af: af, ok: true} }
func rxPin[U Instance](p Pin, af uint8) RxPin[U] { return RxPin[U]{pin: p, af: af, ok: true} }

// Pin returns the GPIO, or NoPin for the placeholder.
func (p TxPin[U]) Pin() Pin {
	if !p.ok {
		return NoPin
	}
	return p.pin
}

// Pin returns the GPIO, or NoPin for the placeholder.
func (p RxPin[U]) Pin() Pin {
	if !p.ok {
		return NoPin
	}
	return p.pin
}

// Pins is the TX/RX pair handed to Configure. Any combination of a TxPin[U]
// and an RxPin[U], either of which may be the placeholder, is admissible.
type Pins[U Instance] struct {
	TX TxPin[U]
	RX RxPin[U]
}

func (p Pins[U]) mux() {
	if p.TX.ok {
		muxPin(p.TX.pin, p.TX.af, true)
	}
	if p.RX.ok {
		muxPin(p.RX.pin, p.RX.af, false)
	}
}
