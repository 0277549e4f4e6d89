package driver

import (
	"bytes"
	"sync"
	"sync/atomic"
)

// TestUART is a test helper that stands in for the UART hardware. It
// drains the driver's TX buffer synchronously inside EnableTXInterrupt
// (the way a fast transmitter would, one OnTXReady per byte) and
// records everything sent. Received data is injected with Feed, which
// pushes bytes through the driver's RX entry point the way the RX
// interrupt would.
type TestUART struct {
	mu   sync.Mutex
	sent bytes.Buffer

	txEnabled atomic.Bool
	onTXReady func()
	onRXByte  func(b byte)
}

// NewTestUART creates a new test UART. Exported for use in tests.
func NewTestUART() *TestUART {
	return &TestUART{}
}

// Attach wires the double to a driver's ISR entry points. Must be
// called right after New, before any command is issued.
func (u *TestUART) Attach(d *Driver) {
	u.onTXReady = d.OnTXReady
	u.onRXByte = d.OnRXByte
}

func (u *TestUART) EnableRXInterrupt() {}

func (u *TestUART) EnableTXInterrupt() {
	u.txEnabled.Store(true)
	for u.txEnabled.Load() {
		u.onTXReady()
	}
}

func (u *TestUART) DisableTXInterrupt() {
	u.txEnabled.Store(false)
}

func (u *TestUART) SendByte(b byte) {
	u.mu.Lock()
	u.sent.WriteByte(b)
	u.mu.Unlock()
}

// Feed simulates data arriving from the peripheral, one RX interrupt
// per byte.
func (u *TestUART) Feed(data string) {
	for i := 0; i < len(data); i++ {
		u.onRXByte(data[i])
	}
}

// Sent returns everything transmitted so far.
func (u *TestUART) Sent() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.sent.String()
}

// Reset clears the transmit record.
func (u *TestUART) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.sent.Reset()
}
