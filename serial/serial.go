// Package serial connects the AT driver to a host serial port. Dialer
// opens the port with go.bug.st/serial; Adapter emulates the UART
// interrupt flow over any io.ReadWriteCloser, so the driver's ISR
// entry points work unchanged on a host machine.
package serial

import (
	"fmt"
	"io"

	bugst "go.bug.st/serial"
)

// Dialer opens a serial port to an AT peripheral.
type Dialer struct {
	// PortName is the device path, e.g. "/dev/ttyUSB0".
	PortName string
	// BaudRate is the line speed, e.g. 115200.
	BaudRate int
}

// Dial opens the configured port in 8N1 mode.
func (d Dialer) Dial() (io.ReadWriteCloser, error) {
	mode := &bugst.Mode{
		BaudRate: d.BaudRate,
		DataBits: 8,
		Parity:   bugst.NoParity,
		StopBits: bugst.OneStopBit,
	}
	port, err := bugst.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %q: %w", d.PortName, err)
	}
	return port, nil
}
