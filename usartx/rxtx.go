// usartx/rxtx.go

package usartx

// Rx is the receive half of peripheral U. It is a zero-sized token: it names
// the peripheral and direction but owns nothing. By convention only the value
// returned from Split is used, so each half has a single owner.
type Rx[U Instance] struct {
	_ [0]U
	_ [0]rxRole
}

// Tx is the transmit half of peripheral U. Same ownership rules as Rx.
type Tx[U Instance] struct {
	_ [0]U
	_ [0]txRole
}

// Read polls the receiver once. When any error flag is up it reads DR (the
// hardware only clears the flags on that read) and reports one error, ranked
// Parity, Framing, Noise, Overrun; the byte is lost. Otherwise it returns the
// received byte, or ErrPending when nothing has arrived. Calling Read again
// after an error resumes normal reception.
func (Rx[U]) Read() (byte, error) {
	d := descOf[U]()
	r := d.regs
	sr := r.SR.Get()

	if sr&srErrors != 0 {
		r.readData()
		var e Error
		switch {
		case sr&srPE != 0:
			e = ErrParity
		case sr&srFE != 0:
			e = ErrFraming
		case sr&srNF != 0:
			e = ErrNoise
		default:
			e = ErrOverrun
		}
		d.dbgRxError(e)
		return 0, e
	}
	if sr&srRXNE != 0 {
		return r.readData(), nil
	}
	d.dbgPending(true)
	return 0, ErrPending
}

// Listen arms the RXNE interrupt and stores w as the receive waker, replacing
// any previous one. w is woken at most once, on the next received byte, after
// which the interrupt is disarmed again.
func (Rx[U]) Listen(w Waker) {
	d := descOf[U]()
	s := disableInterrupts()
	d.armRx(w)
	restoreInterrupts(s)
}

// Unlisten drops the receive waker and disarms RXNE. Safe to call when
// nothing is registered.
func (Rx[U]) Unlisten() {
	d := descOf[U]()
	s := disableInterrupts()
	d.disarmRx()
	restoreInterrupts(s)
}

// Write places b in the transmit register if it is empty and returns nil.
// Otherwise it returns ErrPending; nothing is buffered.
func (Tx[U]) Write(b byte) error {
	d := descOf[U]()
	r := d.regs
	if !r.SR.HasBits(srTXE) {
		d.dbgPending(false)
		return ErrPending
	}
	r.writeData(b)
	return nil
}

// Flush returns nil once the last byte has left the shift register (TC),
// which is later than the register-empty condition Write waits for.
func (Tx[U]) Flush() error {
	d := descOf[U]()
	if !d.regs.SR.HasBits(srTC) {
		d.dbgPending(false)
		return ErrPending
	}
	return nil
}

// Listen arms the TXE and TC interrupts and stores w as the transmit waker,
// replacing any previous one. Wake-once, as for Rx.Listen.
func (Tx[U]) Listen(w Waker) {
	d := descOf[U]()
	s := disableInterrupts()
	d.armTx(w)
	restoreInterrupts(s)
}

// Unlisten drops the transmit waker and disarms TXE and TC.
func (Tx[U]) Unlisten() {
	d := descOf[U]()
	s := disableInterrupts()
	d.disarmTx()
	restoreInterrupts(s)
}
