package driver

import "errors"

var (
	// ErrNoUART is returned when a Driver is constructed without a
	// UART.
	//
	// This indicates a configuration error. A UART implementation is
	// required to move bytes to and from the peripheral.
	ErrNoUART = errors.New("no uart configured")

	// ErrBufferSize is returned when the configured RX buffer
	// capacity is not a power of two.
	ErrBufferSize = errors.New("rx buffer size must be a power of two")

	// ErrAlreadyClosed is returned when Close is called on a Driver
	// that has already been closed, or when a command is sent after
	// Close.
	ErrAlreadyClosed = errors.New("driver already closed")

	// ErrLoopRunning is returned by Loop when the receive loop is
	// already running on another goroutine.
	ErrLoopRunning = errors.New("receive loop already running")

	// ErrWritePayload is returned by Send when called with KindWrite.
	// Write commands carry a payload and go through SendWrite or
	// SendPrompted.
	ErrWritePayload = errors.New("write commands require a payload")
)
