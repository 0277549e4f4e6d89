package driver

//go:generate go tool mockgen -source=uart.go -destination=mock_uart.go -package=driver

// UART is the hardware abstraction the integrator supplies: interrupt
// control plus a synchronous single-byte write. The driver calls
// EnableTXInterrupt after queueing outbound bytes and expects the
// hardware to then call Driver.OnTXReady once per transmit-ready
// event until the driver disables the interrupt again.
//
// Implementations range from memory-mapped UART registers on a
// microcontroller port to the serial.Adapter in this module, which
// emulates the interrupt flow over a host serial port.
type UART interface {
	// EnableRXInterrupt starts delivery of received bytes to
	// Driver.OnRXByte. Called once, from Loop.
	EnableRXInterrupt()

	// EnableTXInterrupt starts (or resumes) delivery of
	// transmit-ready events to Driver.OnTXReady.
	EnableTXInterrupt()

	// DisableTXInterrupt stops transmit-ready events. Called from
	// OnTXReady itself when the TX buffer runs dry, so it must be
	// safe in interrupt context.
	DisableTXInterrupt()

	// SendByte writes one byte to the transmitter.
	SendByte(b byte)
}
