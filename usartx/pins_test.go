package usartx

import (
	"reflect"
	"testing"
)

func TestCapabilities_DoNotConvertAcrossPeripheralsOrRoles(t *testing.T) {
	cases := []struct {
		name     string
		from, to any
	}{
		{"tx pin to another peripheral", USART2TxPA2, TxPin[USART1]{}},
		{"rx pin to another peripheral", USART3RxPB11, RxPin[USART1]{}},
		{"rx pin into the tx role", USART1RxPA10, TxPin[USART1]{}},
		{"tx pin into the rx role", USART1TxPA9, RxPin[USART1]{}},
		{"rx half to another peripheral", Rx[USART2]{}, Rx[USART1]{}},
		{"tx half into the rx role", Tx[USART1]{}, Rx[USART1]{}},
	}
	for _, c := range cases {
		from, to := reflect.TypeOf(c.from), reflect.TypeOf(c.to)
		if from.ConvertibleTo(to) {
			t.Errorf("%s: %v converts to %v", c.name, from, to)
		}
	}
}

func TestCapabilities_HalvesStayZeroSized(t *testing.T) {
	if s := reflect.TypeOf(Rx[USART2]{}).Size(); s != 0 {
		t.Errorf("Rx size = %d, want 0", s)
	}
	if s := reflect.TypeOf(Tx[USART2]{}).Size(); s != 0 {
		t.Errorf("Tx size = %d, want 0", s)
	}
}

func TestNoPinPlaceholders(t *testing.T) {
	if NoTx[USART1]().Pin() != NoPin || NoRx[USART1]().Pin() != NoPin {
		t.Fatal("placeholders must report NoPin")
	}
	if USART1TxPA9.Pin() != PA9 || USART1RxPA10.Pin() != PA10 {
		t.Fatal("fact table pins mismatch")
	}
}
