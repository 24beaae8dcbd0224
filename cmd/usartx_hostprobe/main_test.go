package main

import (
	"bytes"
	"testing"
)

// loop echoes what is written, optionally corrupting or dropping bytes.
type loop struct {
	pending []byte
	corrupt map[int]bool
	drop    map[int]bool
	n       int
}

func (l *loop) Write(p []byte) (int, error) {
	for _, b := range p {
		switch {
		case l.drop[l.n]:
		case l.corrupt[l.n]:
			l.pending = append(l.pending, ^b)
		default:
			l.pending = append(l.pending, b)
		}
		l.n++
	}
	return len(p), nil
}

func (l *loop) Read(p []byte) (int, error) {
	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}

func TestRun_CleanEcho(t *testing.T) {
	res, err := run(&loop{}, pattern(64))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.sent != 64 || res.echoed != 64 || res.mismatched != 0 || res.lost != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRun_CountsLossAndCorruption(t *testing.T) {
	l := &loop{corrupt: map[int]bool{3: true}, drop: map[int]bool{7: true, 8: true}}
	res, err := run(l, pattern(16))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.echoed != 13 || res.mismatched != 1 || res.lost != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestPattern_Deterministic(t *testing.T) {
	if !bytes.Equal(pattern(32), pattern(32)) {
		t.Fatal("pattern is not deterministic")
	}
	if bytes.Equal(pattern(8), make([]byte, 8)) {
		t.Fatal("pattern is all zeros")
	}
}

func TestSerialConfig_RejectsUnknownParity(t *testing.T) {
	old := *parity
	defer func() { *parity = old }()
	*parity = "mark"
	if _, err := serialConfig(); err == nil {
		t.Fatal("expected error for unknown parity")
	}
	*parity = "odd"
	cfg, err := serialConfig()
	if err != nil {
		t.Fatalf("serialConfig: %v", err)
	}
	if cfg.Size != 8 || cfg.Name != *device {
		t.Fatalf("unexpected config %+v", cfg)
	}
}
