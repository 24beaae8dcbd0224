// usartx/peripheral.go

package usartx

import "sync/atomic"

// Instance is the set of raw peripheral tags (USART1, USART2, ...) available on
// the selected chip variant. A tag value stands for exclusive ownership of
// that peripheral's registers; obtain them once through Take.
type Instance interface {
	comparable
	desc() *usart
}

// usart describes one peripheral instance. There is exactly one per physical
// peripheral, allocated at package init.
type usart struct {
	name        string
	regs        *Regs
	enable      *Register32 // RCC APBxENR
	enableBit   uint32
	bus         bus
	irq         uint32
	reducedStop bool // only 1 and 2 stop bits implemented

	// ctx is shared with HandleInterrupt. Touch it only between
	// disableInterrupts and restoreInterrupts.
	ctx intrContext

	stats Stats
}

// intrContext holds at most one pending waker per direction. It is created
// (marked active) by the first Listen and lives for the rest of the program.
type intrContext struct {
	active bool
	rx     Waker
	tx     Waker
}

func newUSART(name string, base uintptr, b bus, enableBit, irq uint32, reducedStop bool) usart {
	return usart{
		name:        name,
		regs:        regsAt(base),
		enable:      enableRegister(b),
		enableBit:   enableBit,
		bus:         b,
		irq:         irq,
		reducedStop: reducedStop,
	}
}

// descOf resolves the descriptor for a tag type without needing a value.
func descOf[U Instance]() *usart {
	var u U
	return u.desc()
}

// Name returns the peripheral name, e.g. "USART2".
func Name[U Instance]() string { return descOf[U]().name }

var taken atomic.Bool

// Take returns the raw peripheral tags. It succeeds once; later calls return
// nil, false so that each peripheral has a single owner.
func Take() (*Peripherals, bool) {
	if !taken.CompareAndSwap(false, true) {
		return nil, false
	}
	return &Peripherals{}, true
}

// The helpers below must run inside a critical section.

func (d *usart) armRx(w Waker) {
	d.ctx.active = true
	d.ctx.rx = w
	d.regs.CR1.SetBits(cr1RXNEIE)
}

func (d *usart) armTx(w Waker) {
	d.ctx.active = true
	d.ctx.tx = w
	d.regs.CR1.SetBits(cr1TXEIE | cr1TCIE)
}

func (d *usart) disarmRx() {
	if d.ctx.active {
		d.ctx.rx = nil
	}
	d.regs.CR1.ClearBits(cr1RXNEIE)
}

func (d *usart) disarmTx() {
	if d.ctx.active {
		d.ctx.tx = nil
	}
	d.regs.CR1.ClearBits(cr1TXEIE | cr1TCIE)
}
