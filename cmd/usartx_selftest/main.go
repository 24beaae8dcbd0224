//go:build tinygo && stm32f4

// Loopback self-test for usartx on an STM32F4 Discovery.
// Wiring: PC6 (USART6 TX) -> PC7 (USART6 RX). USART2 is left to machine.UART0,
// which owns its interrupt on this board.
package main

import (
	"context"
	"crypto/sha1"
	"device/stm32"
	"runtime/interrupt"
	"time"

	"machine"

	"github.com/jangala-dev/tinygo-usartx/usartx"
)

const (
	baud  = 115200
	pclk1 = 42_000_000 // 168 MHz core, APB1 /4
	pclk2 = 84_000_000 // APB2 /2
)

func ledBlink(times int, on time.Duration) {
	for i := 0; i < times; i++ {
		machine.LED.High()
		time.Sleep(on)
		machine.LED.Low()
		time.Sleep(on)
	}
}

// echo sends each byte and waits for it to come back before sending the next.
// The USART has a single data register, so a burst would overrun the receiver.
func echo(ctx context.Context, p *usartx.Port[usartx.USART6], src []byte) ([]byte, error) {
	got := make([]byte, 0, len(src))
	for _, b := range src {
		if err := p.SendByteContext(ctx, b); err != nil {
			return got, err
		}
		r, err := p.RecvByteContext(ctx)
		if err != nil {
			return got, err
		}
		got = append(got, r)
	}
	return got, nil
}

func drain(p *usartx.Port[usartx.USART6]) {
	for {
		if _, err := p.ReadByte(); err == usartx.ErrPending {
			return
		}
	}
}

func main() {
	// Give the monitor time to attach.
	time.Sleep(3 * time.Second)
	println("usartx self-test starting")

	machine.LED.Configure(machine.PinConfig{Mode: machine.PinOutput})

	interrupt.New(stm32.IRQ_USART6, func(interrupt.Interrupt) {
		usartx.HandleInterrupt[usartx.USART6]()
	})

	periph, _ := usartx.Take()
	serial, err := usartx.Configure(periph.USART6,
		usartx.Pins[usartx.USART6]{TX: usartx.USART6TxPC6, RX: usartx.USART6RxPC7},
		usartx.DefaultConfig().WithBaudRate(baud),
		usartx.Clocks{PCLK1: pclk1, PCLK2: pclk2})
	if err != nil {
		println("Configure failed:", err.Error())
		for {
			ledBlink(1, 500*time.Millisecond)
		}
	}
	tx, rx := serial.Split()
	p := usartx.NewPort(tx, rx)
	drain(p)

	pass, fail := 0, 0
	defer func() {
		println("")
		println("Summary")
		println("  passed =", pass)
		println("  failed =", fail)
		if fail == 0 {
			ledBlink(3, 120*time.Millisecond)
		} else {
			for {
				ledBlink(1, 600*time.Millisecond)
				time.Sleep(800 * time.Millisecond)
			}
		}
	}()

	run := func(name string, f func() string) {
		println("")
		println("[Test]", name)
		if msg := f(); msg == "" {
			println("  PASS")
			pass++
		} else {
			println("  FAIL:", msg)
			fail++
		}
	}

	run("poll: Write then Read on the raw halves", func() string {
		drain(p)
		for tx.Write('X') == usartx.ErrPending {
		}
		deadline := time.Now().Add(100 * time.Millisecond)
		for time.Now().Before(deadline) {
			b, err := rx.Read()
			if err == usartx.ErrPending {
				continue
			}
			if err != nil {
				return "receive error: " + err.Error()
			}
			if b != 'X' {
				return "wrong byte"
			}
			return ""
		}
		return "nothing received"
	})

	run("flush: TC follows the last byte", func() string {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		if err := p.SendByteContext(ctx, 'F'); err != nil {
			return "send"
		}
		if err := p.FlushContext(ctx); err != nil {
			return "flush timed out"
		}
		drain(p)
		return ""
	})

	run("wake: RecvByteContext parks until the byte arrives", func() string {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()
		got, err := echo(ctx, p, []byte("hello, usartx\r\n"))
		if err != nil {
			return "echo: " + err.Error()
		}
		if string(got) != "hello, usartx\r\n" {
			return "mismatch"
		}
		return ""
	})

	run("timeout: no data within 200ms", func() string {
		drain(p)
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		if _, err := p.RecvByteContext(ctx); err != context.DeadlineExceeded {
			return "unexpected data"
		}
		return ""
	})

	run("binary: 1 KiB integrity (SHA-1)", func() string {
		n := 1024
		src := make([]byte, n)
		var x uint32 = 0x12345678
		for i := range src {
			x = 1664525*x + 1013904223
			src[i] = byte(x >> 24)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		got, err := echo(ctx, p, src)
		if err != nil || len(got) != n {
			return "timeout/short read"
		}
		if sha1.Sum(got) != sha1.Sum(src) {
			return "hash mismatch"
		}
		return ""
	})

	run("io: Write + Read through the Port", func() string {
		msg := []byte("io-ok")
		buf := make([]byte, 1)
		for _, b := range msg {
			if err := p.WriteByte(b); err != nil {
				return "write"
			}
			if n, err := p.Read(buf); err != nil || n != 1 || buf[0] != b {
				return "read"
			}
		}
		return ""
	})

	println("")
	println("All tests completed")
}
