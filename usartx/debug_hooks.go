//go:build usartxdebug

package usartx

import "sync/atomic"

// Called at ISR entry; spurious when no context exists yet.
func (d *usart) dbgISR(spurious bool) {
	atomic.AddUint32(&d.stats.ISRCount, 1)
	if spurious {
		atomic.AddUint32(&d.stats.ISRSpurious, 1)
	}
}

func (d *usart) dbgWake(rx bool) {
	if rx {
		atomic.AddUint32(&d.stats.WakesRx, 1)
	} else {
		atomic.AddUint32(&d.stats.WakesTx, 1)
	}
}

func (d *usart) dbgRxError(e Error) {
	switch e {
	case ErrParity:
		atomic.AddUint32(&d.stats.ErrParity, 1)
	case ErrFraming:
		atomic.AddUint32(&d.stats.ErrFraming, 1)
	case ErrNoise:
		atomic.AddUint32(&d.stats.ErrNoise, 1)
	case ErrOverrun:
		atomic.AddUint32(&d.stats.ErrOverrun, 1)
	}
}

func (d *usart) dbgPending(rx bool) {
	if rx {
		atomic.AddUint32(&d.stats.PendingRx, 1)
	} else {
		atomic.AddUint32(&d.stats.PendingTx, 1)
	}
}
