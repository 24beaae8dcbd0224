// usartx/pins_f411.go

//go:build stm32f411

package usartx

// STM32F411: USART1, USART2 and USART6 only.

// Peripherals holds one tag per peripheral. See Take.
type Peripherals struct {
	USART1 USART1
	USART2 USART2
	USART6 USART6
}

// Pin capability facts. A TxPin/RxPin passed to Configure must come from this
// table; the values are fixed and must not be reassigned.
var (
	USART1TxPA9  = txPin[USART1](PA9, af7)
	USART1TxPA15 = txPin[USART1](PA15, af7)
	USART1TxPB6  = txPin[USART1](PB6, af7)
	USART1RxPA10 = rxPin[USART1](PA10, af7)
	USART1RxPB3  = rxPin[USART1](PB3, af7)
	USART1RxPB7  = rxPin[USART1](PB7, af7)

	USART2TxPA2 = txPin[USART2](PA2, af7)
	USART2TxPD5 = txPin[USART2](PD5, af7)
	USART2RxPA3 = rxPin[USART2](PA3, af7)
	USART2RxPD6 = rxPin[USART2](PD6, af7)

	USART6TxPA11 = txPin[USART6](PA11, af8)
	USART6TxPC6  = txPin[USART6](PC6, af8)
	USART6RxPA12 = rxPin[USART6](PA12, af8)
	USART6RxPC7  = rxPin[USART6](PC7, af8)
)
