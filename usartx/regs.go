// usartx/regs.go

package usartx

// Regs is the STM32F4 USART/UART register block (RM0090 §30.6).
// Register32 is the volatile register on TinyGo and an emulated one on the host.
type Regs struct {
	SR   Register32 // status
	DR   Register32 // data, 9 significant bits, 8 used here
	BRR  Register32 // baud rate divisor
	CR1  Register32
	CR2  Register32
	CR3  Register32
	GTPR Register32 // guard time and prescaler (unused)
}

// SR bits.
const (
	srPE   = 1 << 0 // parity error
	srFE   = 1 << 1 // framing error
	srNF   = 1 << 2 // noise detected
	srORE  = 1 << 3 // overrun
	srIDLE = 1 << 4
	srRXNE = 1 << 5
	srTC   = 1 << 6
	srTXE  = 1 << 7

	srErrors = srPE | srFE | srNF | srORE
)

// CR1 bits.
const (
	cr1RE     = 1 << 2
	cr1TE     = 1 << 3
	cr1IDLEIE = 1 << 4
	cr1RXNEIE = 1 << 5
	cr1TCIE   = 1 << 6
	cr1TXEIE  = 1 << 7
	cr1PS     = 1 << 9
	cr1PCE    = 1 << 10
	cr1M      = 1 << 12
	cr1UE     = 1 << 13
)

// CR2 STOP field.
const (
	cr2STOPPos  = 12
	cr2STOPMask = 0x3 << cr2STOPPos

	stop1   = 0x0
	stop0p5 = 0x1
	stop2   = 0x2
	stop1p5 = 0x3
)

// bus names the APB domain a peripheral is clocked from.
type bus uint8

const (
	apb1 bus = iota
	apb2
)
