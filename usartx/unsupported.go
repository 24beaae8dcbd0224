// usartx/unsupported.go

//go:build tinygo && !stm32f4

package usartx

// Register bindings exist for the STM32F4 family only.
var _ = usartxSupportsSTM32F4Only
