//go:build !tinygo

// usartx_hostprobe drives a board running examples/echo from the host side
// through a USB-serial adapter and checks every byte comes back unchanged.
//
//	usartx_hostprobe -device /dev/ttyUSB0 -baud 115200 -count 4096
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/tarm/serial"
)

var (
	device  = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (must match the firmware)")
	parity  = flag.String("parity", "none", "Parity: none, even or odd")
	stop    = flag.Int("stop", 1, "Stop bits: 1 or 2")
	count   = flag.Int("count", 1024, "Bytes to echo")
	timeout = flag.Duration("timeout", 200*time.Millisecond, "Per-byte echo timeout")
	verbose = flag.Bool("verbose", false, "Log every mismatch")
)

// pattern is the same LCG the firmware self-test uses.
func pattern(n int) []byte {
	out := make([]byte, n)
	var x uint32 = 0x12345678
	for i := range out {
		x = 1664525*x + 1013904223
		out[i] = byte(x >> 24)
	}
	return out
}

func serialConfig() (*serial.Config, error) {
	cfg := &serial.Config{
		Name:        *device,
		Baud:        *baud,
		ReadTimeout: *timeout,
		Size:        8,
	}
	switch *parity {
	case "none":
		cfg.Parity = serial.ParityNone
	case "even":
		cfg.Parity = serial.ParityEven
	case "odd":
		cfg.Parity = serial.ParityOdd
	default:
		return nil, fmt.Errorf("unknown parity %q", *parity)
	}
	switch *stop {
	case 1:
		cfg.StopBits = serial.Stop1
	case 2:
		cfg.StopBits = serial.Stop2
	default:
		return nil, fmt.Errorf("unsupported stop bits %d", *stop)
	}
	return cfg, nil
}

type result struct {
	sent, echoed, mismatched, lost int
	elapsed                        time.Duration
}

// run echoes src one byte at a time; the target has a single-byte data
// register, so pipelining would overrun it.
func run(port io.ReadWriter, src []byte) (result, error) {
	var res result
	start := time.Now()
	buf := make([]byte, 1)
	for i, b := range src {
		if _, err := port.Write([]byte{b}); err != nil {
			return res, fmt.Errorf("write byte %d: %w", i, err)
		}
		res.sent++
		n, err := port.Read(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return res, fmt.Errorf("read byte %d: %w", i, err)
		}
		switch {
		case n == 0:
			res.lost++
			if *verbose {
				log.Printf("byte %d (0x%02x): no echo", i, b)
			}
		case buf[0] != b:
			res.mismatched++
			if *verbose {
				log.Printf("byte %d: sent 0x%02x got 0x%02x", i, b, buf[0])
			}
		default:
			res.echoed++
		}
	}
	res.elapsed = time.Since(start)
	return res, nil
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	cfg, err := serialConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	port, err := serial.OpenPort(cfg)
	if err != nil {
		log.Fatalf("failed to open serial port %s: %v", *device, err)
	}
	defer port.Close()

	if err := port.Flush(); err != nil {
		log.Printf("flush: %v", err)
	}

	log.Printf("probing %s at %d baud, parity=%s stop=%d, %d bytes", *device, *baud, *parity, *stop, *count)
	res, err := run(port, pattern(*count))
	if err != nil {
		log.Fatalf("probe: %v", err)
	}

	fmt.Printf("sent=%d echoed=%d mismatched=%d lost=%d in %v\n",
		res.sent, res.echoed, res.mismatched, res.lost, res.elapsed.Round(time.Millisecond))
	if res.echoed != res.sent {
		os.Exit(1)
	}
}
