// usartx/pins_f469.go

//go:build stm32f469

package usartx

// STM32F469/F479 (and the F427/F429 class, which shares this table).

// USART3 tags the USART3 peripheral (APB1).
type USART3 struct{ _ struct{} }

// UART4 tags the UART4 peripheral (APB1). Stop bits: 1 and 2 only.
type UART4 struct{ _ struct{} }

// UART5 tags the UART5 peripheral (APB1). Stop bits: 1 and 2 only.
type UART5 struct{ _ struct{} }

// UART7 tags the UART7 peripheral (APB1).
type UART7 struct{ _ struct{} }

// UART8 tags the UART8 peripheral (APB1).
type UART8 struct{ _ struct{} }

var (
	usart3 = newUSART("USART3", 0x40004800, apb1, 1<<18, 39, false)
	uart4  = newUSART("UART4", 0x40004C00, apb1, 1<<19, 52, true)
	uart5  = newUSART("UART5", 0x40005000, apb1, 1<<20, 53, true)
	uart7  = newUSART("UART7", 0x40007800, apb1, 1<<30, 82, false)
	uart8  = newUSART("UART8", 0x40007C00, apb1, 1<<31, 83, false)
)

func (USART3) desc() *usart { return &usart3 }
func (UART4) desc() *usart  { return &uart4 }
func (UART5) desc() *usart  { return &uart5 }
func (UART7) desc() *usart  { return &uart7 }
func (UART8) desc() *usart  { return &uart8 }

// Peripherals holds one tag per peripheral. See Take.
type Peripherals struct {
	USART1 USART1
	USART2 USART2
	USART3 USART3
	UART4  UART4
	UART5  UART5
	USART6 USART6
	UART7  UART7
	UART8  UART8
}

// Pin capability facts. A TxPin/RxPin passed to Configure must come from this
// table; the values are fixed and must not be reassigned.
var (
	USART1TxPA9  = txPin[USART1](PA9, af7)
	USART1TxPB6  = txPin[USART1](PB6, af7)
	USART1RxPA10 = rxPin[USART1](PA10, af7)
	USART1RxPB7  = rxPin[USART1](PB7, af7)

	USART2TxPA2 = txPin[USART2](PA2, af7)
	USART2TxPD5 = txPin[USART2](PD5, af7)
	USART2RxPA3 = rxPin[USART2](PA3, af7)
	USART2RxPD6 = rxPin[USART2](PD6, af7)

	USART3TxPB10 = txPin[USART3](PB10, af7)
	USART3TxPC10 = txPin[USART3](PC10, af7)
	USART3TxPD8  = txPin[USART3](PD8, af7)
	USART3RxPB11 = rxPin[USART3](PB11, af7)
	USART3RxPC11 = rxPin[USART3](PC11, af7)
	USART3RxPD9  = rxPin[USART3](PD9, af7)

	UART4TxPA0  = txPin[UART4](PA0, af8)
	UART4TxPC10 = txPin[UART4](PC10, af8)
	UART4RxPA1  = rxPin[UART4](PA1, af8)
	UART4RxPC11 = rxPin[UART4](PC11, af8)

	UART5TxPC12 = txPin[UART5](PC12, af8)
	UART5RxPD2  = rxPin[UART5](PD2, af8)

	USART6TxPC6  = txPin[USART6](PC6, af8)
	USART6TxPG14 = txPin[USART6](PG14, af8)
	USART6RxPC7  = rxPin[USART6](PC7, af8)
	USART6RxPG9  = rxPin[USART6](PG9, af8)

	UART7TxPE8 = txPin[UART7](PE8, af8)
	UART7TxPF7 = txPin[UART7](PF7, af8)
	UART7RxPE7 = rxPin[UART7](PE7, af8)
	UART7RxPF6 = rxPin[UART7](PF6, af8)

	UART8TxPE1 = txPin[UART8](PE1, af8)
	UART8RxPE0 = rxPin[UART8](PE0, af8)
)
