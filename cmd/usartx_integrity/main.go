//go:build tinygo && stm32f4 && !stm32f411

// Cross-USART integrity test for an STM32F4 Discovery.
// Wiring:
//
//	USART3 TX=PB10 -> USART6 RX=PC7
//	USART6 TX=PC6 -> USART3 RX=PB11
//
// Neither peripheral has a receive FIFO, so both directions run in lockstep:
// one byte each way, then both are collected before the next pair.
package main

import (
	"context"
	"device/stm32"
	"runtime/interrupt"
	"time"

	"machine"

	"github.com/jangala-dev/tinygo-usartx/usartx"
)

/*** Tunables ***/
const (
	baud           = 230400
	totalBytes     = 16 * 1024 // bytes per direction
	timeoutPerTest = 20 * time.Second
	warmupDelay    = 2 * time.Second
	contextRadius  = 8 // expected bytes shown either side of a mismatch

	pclk1 = 42_000_000
	pclk2 = 84_000_000
)

func patternA(i int) byte { return byte((i*31 + 0x55) & 0xFF) }
func patternB(i int) byte { return byte((i*17 + 0xA6) & 0xFF) }

func main() {
	time.Sleep(warmupDelay)
	println("usartx integrity test (STM32F4)")
	println("baud =", baud, "  bytes/dir =", totalBytes)

	interrupt.New(stm32.IRQ_USART3, func(interrupt.Interrupt) {
		usartx.HandleInterrupt[usartx.USART3]()
	})
	interrupt.New(stm32.IRQ_USART6, func(interrupt.Interrupt) {
		usartx.HandleInterrupt[usartx.USART6]()
	})

	periph, _ := usartx.Take()
	clk := usartx.Clocks{PCLK1: pclk1, PCLK2: pclk2}
	cfg := usartx.DefaultConfig().WithBaudRate(baud)

	s3, err := usartx.Configure(periph.USART3,
		usartx.Pins[usartx.USART3]{TX: usartx.USART3TxPB10, RX: usartx.USART3RxPB11}, cfg, clk)
	if err != nil {
		println("USART3:", err.Error())
		return
	}
	s6, err := usartx.Configure(periph.USART6,
		usartx.Pins[usartx.USART6]{TX: usartx.USART6TxPC6, RX: usartx.USART6RxPC7}, cfg, clk)
	if err != nil {
		println("USART6:", err.Error())
		return
	}
	tx3, rx3 := s3.Split()
	tx6, rx6 := s6.Split()
	a := usartx.NewPort(tx3, rx3)
	b := usartx.NewPort(tx6, rx6)

	machine.LED.Configure(machine.PinConfig{Mode: machine.PinOutput})

	pass, fail := 0, 0
	report := func(name, err string) {
		if err == "" {
			println("[PASS]", name)
			pass++
		} else {
			println("[FAIL]", name, ":", err)
			fail++
		}
	}

	report("USART3 -> USART6", oneWay(a, b, patternA, totalBytes))
	report("USART6 -> USART3", oneWay(b, a, patternB, totalBytes))
	report("Lockstep duplex", duplex(a, b, totalBytes))

	println("")
	println("Summary")
	println("  passed =", pass)
	println("  failed =", fail)
	if fail == 0 {
		blink(3, 120*time.Millisecond)
	} else {
		for {
			blink(1, 600*time.Millisecond)
			time.Sleep(800 * time.Millisecond)
		}
	}
}

/*** Test runners ***/

func oneWay[T, R usartx.Instance](tx *usartx.Port[T], rx *usartx.Port[R], gen func(int) byte, n int) string {
	drain(tx)
	drain(rx)
	ctx, cancel := context.WithTimeout(context.Background(), timeoutPerTest)
	defer cancel()

	for i := 0; i < n; i++ {
		if err := tx.SendByteContext(ctx, gen(i)); err != nil {
			return "send: " + err.Error()
		}
		got, err := rx.RecvByteContext(ctx)
		if err != nil {
			println("receive failed at offset", i)
			return "recv: " + err.Error()
		}
		if got != gen(i) {
			mismatch(gen, i, got)
			return "integrity mismatch"
		}
	}
	return ""
}

func duplex[A, B usartx.Instance](a *usartx.Port[A], b *usartx.Port[B], n int) string {
	drain(a)
	drain(b)
	ctx, cancel := context.WithTimeout(context.Background(), timeoutPerTest)
	defer cancel()

	for i := 0; i < n; i++ {
		if err := a.SendByteContext(ctx, patternA(i)); err != nil {
			return "send A: " + err.Error()
		}
		if err := b.SendByteContext(ctx, patternB(i)); err != nil {
			return "send B: " + err.Error()
		}
		gotB, err := b.RecvByteContext(ctx)
		if err != nil {
			println("B receive failed at offset", i)
			return "recv B: " + err.Error()
		}
		gotA, err := a.RecvByteContext(ctx)
		if err != nil {
			println("A receive failed at offset", i)
			return "recv A: " + err.Error()
		}
		if gotB != patternA(i) {
			mismatch(patternA, i, gotB)
			return "A -> B mismatch"
		}
		if gotA != patternB(i) {
			mismatch(patternB, i, gotA)
			return "B -> A mismatch"
		}
	}
	return ""
}

/*** Helpers ***/

func drain[U usartx.Instance](p *usartx.Port[U]) {
	for {
		if _, err := p.ReadByte(); err == usartx.ErrPending {
			return
		}
	}
}

// mismatch prints the expected window around off and the byte actually seen.
func mismatch(gen func(int) byte, off int, got byte) {
	println("First mismatch at offset", off)
	start := off - contextRadius
	if start < 0 {
		start = 0
	}
	print("  exp:")
	for i := start; i <= off+contextRadius; i++ {
		if i == off {
			print(" [")
			printHex(gen(i))
			print("]")
			continue
		}
		print(" ")
		printHex(gen(i))
	}
	println("")
	print("  got: ")
	printHex(got)
	println("")
}

const hexdigits = "0123456789ABCDEF"

func printHex(b byte) {
	print(string([]byte{hexdigits[b>>4], hexdigits[b&0x0F]}))
}

func blink(times int, on time.Duration) {
	for i := 0; i < times; i++ {
		machine.LED.High()
		time.Sleep(on)
		machine.LED.Low()
		time.Sleep(on)
	}
}
