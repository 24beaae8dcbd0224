// usartx/hw_stm32f4.go

//go:build tinygo && stm32f4

package usartx

import (
	"device/arm"
	"machine"
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"
)

type Register32 = volatile.Register32

const rccBase = 0x40023800

func regsAt(base uintptr) *Regs {
	return (*Regs)(unsafe.Pointer(base))
}

// enableRegister returns RCC APB1ENR or APB2ENR.
func enableRegister(b bus) *Register32 {
	if b == apb2 {
		return (*Register32)(unsafe.Pointer(uintptr(rccBase + 0x44)))
	}
	return (*Register32)(unsafe.Pointer(uintptr(rccBase + 0x40)))
}

// DR is 32 bits wide but only the low byte is ours. A byte-wide access keeps
// the bus transaction to that byte.
func (r *Regs) readData() byte {
	return (*volatile.Register8)(unsafe.Pointer(&r.DR)).Get()
}

func (r *Regs) writeData(b byte) {
	(*volatile.Register8)(unsafe.Pointer(&r.DR)).Set(b)
}

type irqState = interrupt.State

func disableInterrupts() irqState { return interrupt.Disable() }

func restoreInterrupts(s irqState) { interrupt.Restore(s) }

func nvicUnmask(irq uint32) { arm.EnableIRQ(irq) }

func nvicUnpend(irq uint32) {
	arm.NVIC.ICPR[irq>>5].Set(1 << (irq & 0x1f))
}

func muxPin(p Pin, af uint8, tx bool) {
	mode := machine.PinModeUARTRX
	if tx {
		mode = machine.PinModeUARTTX
	}
	machine.Pin(p).ConfigureAltFunc(machine.PinConfig{Mode: mode}, af)
}
