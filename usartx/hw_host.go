// usartx/hw_host.go

//go:build !tinygo

package usartx

import (
	"sync"
	"sync/atomic"
)

// Host shim: emulated registers, NVIC, RCC and GPIO mux so the driver runs
// under go test. The data register mimics the silicon side effects the driver
// relies on: reading DR clears RXNE and the error flags, writing DR clears TXE
// and TC.

// Register32 mirrors the method set of TinyGo's volatile.Register32.
type Register32 struct{ v atomic.Uint32 }

func (r *Register32) Get() uint32           { return r.v.Load() }
func (r *Register32) Set(v uint32)          { r.v.Store(v) }
func (r *Register32) SetBits(m uint32)      { r.v.Or(m) }
func (r *Register32) ClearBits(m uint32)    { r.v.And(^m) }
func (r *Register32) HasBits(m uint32) bool { return r.v.Load()&m != 0 }
func (r *Register32) ReplaceBits(v, m uint32, pos uint8) {
	for {
		old := r.v.Load()
		nv := old&^(m<<pos) | (v&m)<<pos
		if r.v.CompareAndSwap(old, nv) {
			return
		}
	}
}

const srReset = srTXE | srTC

func regsAt(uintptr) *Regs {
	r := new(Regs)
	r.SR.Set(srReset)
	return r
}

var rccAPB1ENR, rccAPB2ENR Register32

func enableRegister(b bus) *Register32 {
	if b == apb2 {
		return &rccAPB2ENR
	}
	return &rccAPB1ENR
}

func (r *Regs) readData() byte {
	v := r.DR.Get()
	r.SR.ClearBits(srRXNE | srErrors)
	return byte(v)
}

// Transmit and receive data share the DR address on silicon but are separate
// latches; tdr keeps the transmitted byte apart from the received one.
var tdr sync.Map // *Regs -> *Register32

func tdrOf(r *Regs) *Register32 {
	v, _ := tdr.LoadOrStore(r, new(Register32))
	return v.(*Register32)
}

func (r *Regs) writeData(b byte) {
	tdrOf(r).Set(uint32(b))
	r.SR.ClearBits(srTXE | srTC)
}

// The critical section is a plain mutex; it is not reentrant.
var critical sync.Mutex

type irqState struct{}

func disableInterrupts() irqState {
	critical.Lock()
	return irqState{}
}

func restoreInterrupts(irqState) { critical.Unlock() }

var nvicEnabled, nvicPending [4]Register32

func nvicUnmask(irq uint32) { nvicEnabled[irq>>5].SetBits(1 << (irq & 0x1f)) }
func nvicUnpend(irq uint32) { nvicPending[irq>>5].ClearBits(1 << (irq & 0x1f)) }

// Used by tests to emulate the controller.
func nvicPend(irq uint32)           { nvicPending[irq>>5].SetBits(1 << (irq & 0x1f)) }
func nvicIsEnabled(irq uint32) bool { return nvicEnabled[irq>>5].HasBits(1 << (irq & 0x1f)) }
func nvicIsPending(irq uint32) bool { return nvicPending[irq>>5].HasBits(1 << (irq & 0x1f)) }

// pinMux records af | role<<4 | 1<<7 per pin.
var pinMux [7 * 16]Register32

const (
	muxValid = 1 << 7
	muxTX    = 1 << 4
)

func muxPin(p Pin, af uint8, tx bool) {
	v := uint32(af) | muxValid
	if tx {
		v |= muxTX
	}
	pinMux[p].Set(v)
}
