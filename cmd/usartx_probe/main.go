//go:build tinygo && stm32f4 && usartxdebug

// Register and counter dump around a short loopback exchange on USART6.
// Wiring: PC6 -> PC7. Build with -tags usartxdebug.
package main

import (
	"context"
	"device/stm32"
	"runtime/interrupt"
	"time"

	"github.com/jangala-dev/tinygo-usartx/usartx"
)

const baud = 115200

func printStats(label string) {
	s := usartx.DebugStats[usartx.USART6]()
	r := usartx.DebugRegs[usartx.USART6]()
	println("==", label)
	println("ISR:     count=", s.ISRCount, " spurious=", s.ISRSpurious)
	println("Wakes:   rx=", s.WakesRx, " tx=", s.WakesTx)
	println("Errors:  PE=", s.ErrParity, " FE=", s.ErrFraming, " NF=", s.ErrNoise, " ORE=", s.ErrOverrun)
	println("Pending: rx=", s.PendingRx, " tx=", s.PendingTx)
	println("Regs:    SR=", r.SR, " CR1=", r.CR1, " CR2=", r.CR2, " CR3=", r.CR3, " BRR=", r.BRR)
}

func main() {
	time.Sleep(2 * time.Second)

	interrupt.New(stm32.IRQ_USART6, func(interrupt.Interrupt) {
		usartx.HandleInterrupt[usartx.USART6]()
	})

	printStats("before Configure")

	periph, _ := usartx.Take()
	serial, err := usartx.Configure(periph.USART6,
		usartx.Pins[usartx.USART6]{TX: usartx.USART6TxPC6, RX: usartx.USART6RxPC7},
		usartx.DefaultConfig().WithBaudRate(baud),
		usartx.Clocks{PCLK1: 42_000_000, PCLK2: 84_000_000})
	if err != nil {
		println("fatal:", err.Error())
		for {
			time.Sleep(time.Hour)
		}
	}
	usartx.DebugReset[usartx.USART6]()
	printStats("after Configure")

	tx, rx := serial.Split()
	p := usartx.NewPort(tx, rx)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for _, b := range []byte("probe") {
		_ = p.SendByteContext(ctx, b)
		if _, err := p.RecvByteContext(ctx); err != nil {
			println("recv:", err.Error())
		}
	}
	_ = p.FlushContext(ctx)
	printStats("after 5-byte echo")

	for {
		time.Sleep(time.Hour)
	}
}
