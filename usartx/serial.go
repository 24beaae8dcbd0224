// usartx/serial.go

package usartx

// Serial is a configured peripheral together with the pins it owns.
type Serial[U Instance] struct {
	usart U
	pins  Pins[U]
}

// Configure clocks and programs peripheral U and returns the operating handle.
// The steps follow RM0090 §30.3: bus clock on, pins muxed, control registers
// reset, CR1 written in one go, stop bits, divisor, then the NVIC line is
// unmasked. No USART interrupt source is enabled; see Listen.
//
// Pin legality is a compile-time property of pins. The only runtime failure is
// ErrInvalidConfig for a zero baud rate or a zero clock on U's bus.
func Configure[U Instance](usart U, pins Pins[U], cfg Config, clocks Clocks) (*Serial[U], error) {
	d := usart.desc()
	pclk := clocks.forBus(d.bus)
	if cfg.BaudRate == 0 || pclk == 0 {
		return nil, ErrInvalidConfig
	}

	// 1) Bus clock.
	d.enable.SetBits(d.enableBit)

	// 2) Pins into their alternate functions.
	pins.mux()

	// 3) Divisor, rounded half up.
	div := baudDivisor(pclk, cfg.BaudRate)

	// 4) Baseline: no LIN, smartcard, IrDA, flow control or DMA.
	r := d.regs
	r.CR1.Set(0)
	r.CR2.Set(0)
	r.CR3.Set(0)

	// 5) Enable, framing and direction in a single write.
	cr1 := uint32(cr1UE | cr1TE | cr1RE)
	if cfg.WordLength == DataBits9 {
		cr1 |= cr1M
	}
	if cfg.Parity != ParityNone {
		cr1 |= cr1PCE
	}
	if cfg.Parity == ParityOdd {
		cr1 |= cr1PS
	}
	r.CR1.Set(cr1)

	// 6) Stop bits.
	r.CR2.ReplaceBits(stopField(cfg.StopBits, d.reducedStop), cr2STOPMask>>cr2STOPPos, cr2STOPPos)

	// 7) Baud rate.
	r.BRR.Set(div)

	// 8) NVIC line. Sources stay masked in CR1 until Listen.
	nvicUnmask(d.irq)

	return &Serial[U]{usart: usart, pins: pins}, nil
}

// Split returns independent transmit and receive tokens for the same
// peripheral. Keep at most one live Tx and one live Rx per peripheral.
func (s *Serial[U]) Split() (Tx[U], Rx[U]) {
	return Tx[U]{}, Rx[U]{}
}

// Release hands back the raw peripheral and pins. The hardware keeps its
// configuration.
func (s *Serial[U]) Release() (U, Pins[U]) {
	return s.usart, s.pins
}

// Read polls for one received byte. See Rx.Read.
func (s *Serial[U]) Read() (byte, error) { return Rx[U]{}.Read() }

// Write offers one byte to the transmitter. See Tx.Write.
func (s *Serial[U]) Write(b byte) error { return Tx[U]{}.Write(b) }

// Flush reports whether transmission has completed. See Tx.Flush.
func (s *Serial[U]) Flush() error { return Tx[U]{}.Flush() }

// Listen enables the interrupt source for e without registering a waker.
// Firmware that installs its own handler uses this instead of Rx/Tx Listen.
func (s *Serial[U]) Listen(e Event) {
	d := descOf[U]()
	st := disableInterrupts()
	d.regs.CR1.SetBits(e.cr1Bit())
	restoreInterrupts(st)
}

// Unlisten disables the interrupt source for e.
func (s *Serial[U]) Unlisten(e Event) {
	d := descOf[U]()
	st := disableInterrupts()
	d.regs.CR1.ClearBits(e.cr1Bit())
	restoreInterrupts(st)
}

// IsIdle reports the idle-line flag.
func (s *Serial[U]) IsIdle() bool { return descOf[U]().regs.SR.HasBits(srIDLE) }

// IsTxe reports whether the transmit register can accept a byte.
func (s *Serial[U]) IsTxe() bool { return descOf[U]().regs.SR.HasBits(srTXE) }

// IsRxne reports whether a received byte is waiting.
func (s *Serial[U]) IsRxne() bool { return descOf[U]().regs.SR.HasBits(srRXNE) }
