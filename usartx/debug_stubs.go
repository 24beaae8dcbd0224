//go:build !usartxdebug

package usartx

type Stats struct{}

func DebugReset[U Instance]()       {}
func DebugStats[U Instance]() Stats { return Stats{} }

type RegsSnapshot struct{}

func DebugRegs[U Instance]() RegsSnapshot { return RegsSnapshot{} }

func (d *usart) dbgISR(bool)      {}
func (d *usart) dbgWake(bool)     {}
func (d *usart) dbgRxError(Error) {}
func (d *usart) dbgPending(bool)  {}
