package usartx

import "testing"

func TestListenRx_WakesOnceAndDisarms(t *testing.T) {
	_, rx, d := splitUSART2(t)
	w := &countingWaker{}

	rx.Listen(w)
	if !d.regs.CR1.HasBits(cr1RXNEIE) {
		t.Fatal("Listen did not arm RXNEIE")
	}
	if fire[USART2]() {
		t.Fatal("interrupt fired with no event")
	}

	arrive[USART2]('a', 0)
	if !fire[USART2]() {
		t.Fatal("armed RXNE did not fire")
	}
	if w.count() != 1 {
		t.Fatalf("wakes = %d; want 1", w.count())
	}
	if d.regs.CR1.HasBits(cr1RXNEIE) {
		t.Fatal("RXNEIE still armed after wake")
	}
	if d.ctx.rx != nil {
		t.Fatal("RX waker still stored after wake")
	}

	// Next byte before re-listen: the source is masked, and a stray handler
	// run has nothing to wake.
	if _, err := rx.Read(); err != nil {
		t.Fatalf("Read: %v", err)
	}
	arrive[USART2]('b', 0)
	if fire[USART2]() {
		t.Fatal("disarmed RXNE fired")
	}
	HandleInterrupt[USART2]()
	if w.count() != 1 {
		t.Fatalf("wakes = %d after second event; want still 1", w.count())
	}
}

func TestListenTx_ArmsBothSourcesAndDisarms(t *testing.T) {
	tx, _, d := splitUSART2(t)
	w := &countingWaker{}

	occupyTx[USART2]()
	tx.Listen(w)
	if got := d.regs.CR1.Get() & (cr1TXEIE | cr1TCIE); got != cr1TXEIE|cr1TCIE {
		t.Fatalf("CR1 = %#x; want TXEIE|TCIE", d.regs.CR1.Get())
	}
	if fire[USART2]() {
		t.Fatal("fired while transmitter busy")
	}

	d.regs.SR.SetBits(srTXE)
	if !fire[USART2]() {
		t.Fatal("armed TXE did not fire")
	}
	if w.count() != 1 {
		t.Fatalf("wakes = %d; want 1", w.count())
	}
	if d.regs.CR1.HasBits(cr1TXEIE | cr1TCIE) {
		t.Fatal("TX sources still armed after wake")
	}
}

func TestUnlisten_NothingPendingIsNoop(t *testing.T) {
	tx, rx, d := splitUSART2(t)

	// No context exists yet.
	rx.Unlisten()
	tx.Unlisten()
	if d.ctx.active {
		t.Fatal("Unlisten created the context")
	}

	w := &countingWaker{}
	rx.Listen(w)
	rx.Unlisten()
	rx.Unlisten()
	if d.regs.CR1.HasBits(cr1RXNEIE) || d.ctx.rx != nil {
		t.Fatal("Unlisten left RX armed")
	}
	arrive[USART2]('x', 0)
	HandleInterrupt[USART2]()
	if w.count() != 0 {
		t.Fatal("unlistened waker was woken")
	}
}

func TestListen_ReplacesPreviousWaker(t *testing.T) {
	_, rx, _ := splitUSART2(t)
	first, second := &countingWaker{}, &countingWaker{}

	rx.Listen(first)
	rx.Listen(second)
	arrive[USART2]('a', 0)
	fire[USART2]()

	if first.count() != 0 || second.count() != 1 {
		t.Fatalf("wakes first=%d second=%d; want 0, 1", first.count(), second.count())
	}
}

func TestWakerSlots_AreIndependent(t *testing.T) {
	tx, rx, d := splitUSART2(t)
	rw, tw := &countingWaker{}, &countingWaker{}

	occupyTx[USART2]()
	tx.Listen(tw)
	rx.Listen(rw)
	rx.Unlisten()
	if d.ctx.tx == nil || !d.regs.CR1.HasBits(cr1TXEIE|cr1TCIE) {
		t.Fatal("clearing the RX slot disturbed TX")
	}

	rx.Listen(rw)
	tx.Unlisten()
	if d.ctx.rx == nil || !d.regs.CR1.HasBits(cr1RXNEIE) {
		t.Fatal("clearing the TX slot disturbed RX")
	}

	tx.Listen(tw)
	d.regs.SR.SetBits(srTXE)
	fire[USART2]()
	if tw.count() != 1 || rw.count() != 0 {
		t.Fatalf("wakes tx=%d rx=%d; want 1, 0", tw.count(), rw.count())
	}
	if d.ctx.rx == nil || !d.regs.CR1.HasBits(cr1RXNEIE) {
		t.Fatal("TX wake disturbed the RX registration")
	}
}

func TestHandleInterrupt_RxBeforeTx(t *testing.T) {
	tx, rx, d := splitUSART2(t)
	var order []string
	rx.Listen(WakerFunc(func() { order = append(order, "rx") }))
	tx.Listen(WakerFunc(func() { order = append(order, "tx") }))

	arrive[USART2]('a', 0) // TXE is already set
	HandleInterrupt[USART2]()

	if len(order) != 2 || order[0] != "rx" || order[1] != "tx" {
		t.Fatalf("wake order = %v; want [rx tx]", order)
	}
	if d.regs.CR1.HasBits(cr1RXNEIE | cr1TXEIE | cr1TCIE) {
		t.Fatalf("CR1 = %#x; both directions should be disarmed", d.regs.CR1.Get())
	}
}

func TestHandleInterrupt_DisarmsWithoutWaker(t *testing.T) {
	_, _, d := splitUSART2(t)
	s := disableInterrupts()
	d.ctx.active = true
	restoreInterrupts(s)

	// Armed without a waker, e.g. through Serial.Listen.
	d.regs.CR1.SetBits(cr1RXNEIE)
	arrive[USART2]('a', 0)
	if !fire[USART2]() {
		t.Fatal("did not fire")
	}
	if d.regs.CR1.HasBits(cr1RXNEIE) {
		t.Fatal("unconsumed RXNE left armed")
	}
}

func TestHandleInterrupt_BeforeAnyListen(t *testing.T) {
	_, _, d := splitUSART2(t)
	nvicPend(d.irq)
	d.regs.CR1.SetBits(cr1RXNEIE)
	arrive[USART2]('a', 0)

	HandleInterrupt[USART2]()
	if !nvicIsPending(d.irq) {
		t.Fatal("handler without context must not touch the controller")
	}
	if !d.regs.CR1.HasBits(cr1RXNEIE) {
		t.Fatal("handler without context must not touch CR1")
	}
}

func TestHandleInterrupt_Unpends(t *testing.T) {
	_, rx, d := splitUSART2(t)
	rx.Listen(&countingWaker{})
	arrive[USART2]('a', 0)
	fire[USART2]()
	if nvicIsPending(d.irq) {
		t.Fatal("line still pending after handler")
	}
}

func TestSignal_Coalesces(t *testing.T) {
	s := NewSignal()
	s.Wake()
	s.Wake()
	<-s
	select {
	case <-s:
		t.Fatal("second wake was not coalesced")
	default:
	}
	s.Wake()
	s.drain()
	select {
	case <-s:
		t.Fatal("drain left a wake behind")
	default:
	}
}
