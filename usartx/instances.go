// usartx/instances.go

package usartx

// Peripherals present on every supported STM32F4 variant. Variant files add
// the rest along with their pin tables.

// USART1 tags the USART1 peripheral (APB2).
type USART1 struct{ _ struct{} }

// USART2 tags the USART2 peripheral (APB1).
type USART2 struct{ _ struct{} }

// USART6 tags the USART6 peripheral (APB2).
type USART6 struct{ _ struct{} }

var (
	usart1 = newUSART("USART1", 0x40011000, apb2, 1<<4, 37, false)
	usart2 = newUSART("USART2", 0x40004400, apb1, 1<<17, 38, false)
	usart6 = newUSART("USART6", 0x40011400, apb2, 1<<5, 71, false)
)

func (USART1) desc() *usart { return &usart1 }
func (USART2) desc() *usart { return &usart2 }
func (USART6) desc() *usart { return &usart6 }
