//go:build usartxdebug

package usartx

import "sync/atomic"

// Stats holds per-peripheral counters since the last reset.
type Stats struct {
	// ISR-level
	ISRCount    uint32 // HandleInterrupt entries
	ISRSpurious uint32 // entries before any Listen (no context yet)
	WakesRx     uint32 // RX wakers invoked
	WakesTx     uint32 // TX wakers invoked

	// Receive errors as reported by Read
	ErrParity  uint32
	ErrFraming uint32
	ErrNoise   uint32
	ErrOverrun uint32

	// Polls that returned ErrPending
	PendingRx uint32
	PendingTx uint32
}

// DebugReset zeroes the counters of U.
func DebugReset[U Instance]() {
	d := descOf[U]()
	s := disableInterrupts()
	d.stats = Stats{}
	restoreInterrupts(s)
}

// DebugStats returns a copy of the counters of U.
func DebugStats[U Instance]() Stats {
	st := &descOf[U]().stats
	return Stats{
		ISRCount:    atomic.LoadUint32(&st.ISRCount),
		ISRSpurious: atomic.LoadUint32(&st.ISRSpurious),
		WakesRx:     atomic.LoadUint32(&st.WakesRx),
		WakesTx:     atomic.LoadUint32(&st.WakesTx),

		ErrParity:  atomic.LoadUint32(&st.ErrParity),
		ErrFraming: atomic.LoadUint32(&st.ErrFraming),
		ErrNoise:   atomic.LoadUint32(&st.ErrNoise),
		ErrOverrun: atomic.LoadUint32(&st.ErrOverrun),

		PendingRx: atomic.LoadUint32(&st.PendingRx),
		PendingTx: atomic.LoadUint32(&st.PendingTx),
	}
}

// Regs snapshot. Reading DR would consume data, so it is left out.
type RegsSnapshot struct {
	SR   uint32
	BRR  uint32
	CR1  uint32
	CR2  uint32
	CR3  uint32
	GTPR uint32
}

// DebugRegs reads the side-effect-free registers of U.
func DebugRegs[U Instance]() RegsSnapshot {
	r := descOf[U]().regs
	return RegsSnapshot{
		SR:   r.SR.Get(),
		BRR:  r.BRR.Get(),
		CR1:  r.CR1.Get(),
		CR2:  r.CR2.Get(),
		CR3:  r.CR3.Get(),
		GTPR: r.GTPR.Get(),
	}
}
