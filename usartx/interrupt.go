// usartx/interrupt.go

package usartx

// HandleInterrupt services the interrupt line of peripheral U. Wire it into
// the vector table from firmware, for example:
//
//	interrupt.New(stm32.IRQ_USART6, func(interrupt.Interrupt) {
//		usartx.HandleInterrupt[usartx.USART6]()
//	})
//
// TinyGo allows one handler per line. Boards whose machine package backs a
// UART with one of these peripherals (USART2 on the STM32F4 Discovery) already
// own that line, so pick another instance there.
//
// It wakes the registered RX waker when RXNE is set and the TX waker when TXE
// is set, in that order, and disarms each direction it inspected whether or
// not a waker was present, so an armed event nobody consumes cannot storm.
// Nothing happens before the first Listen on U.
func HandleInterrupt[U Instance]() {
	descOf[U]().handleInterrupt()
}

func (d *usart) handleInterrupt() {
	s := disableInterrupts()
	if !d.ctx.active {
		d.dbgISR(true)
		restoreInterrupts(s)
		return
	}
	d.dbgISR(false)

	nvicUnpend(d.irq)
	sr := d.regs.SR.Get()

	if sr&srRXNE != 0 {
		if w := d.ctx.rx; w != nil {
			w.Wake()
			d.dbgWake(true)
		}
		d.disarmRx()
	}
	if sr&srTXE != 0 {
		if w := d.ctx.tx; w != nil {
			w.Wake()
			d.dbgWake(false)
		}
		d.disarmTx()
	}
	restoreInterrupts(s)
}
