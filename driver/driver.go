// Package driver implements the protocol engine for conversing with a
// peripheral over AT commands: the ISR-facing byte paths, the receive
// loop that reassembles and classifies lines, and the session
// coordination that serializes callers and routes each response back
// to the one that asked for it.
package driver

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/embhost/atlink/at"
	"github.com/embhost/atlink/sbuf"
)

// Driver talks to one AT peripheral over one UART. Construct it with
// New, start the receive loop with Loop, then issue commands with
// Send, SendWrite and SendPrompted from any number of goroutines; the
// driver serializes them so a single command is in flight at a time.
//
// The two ISR entry points, OnRXByte and OnTXReady, must be wired to
// the UART's receive and transmit-ready events.
type Driver struct {
	uart UART
	// config contains the driver configuration settings
	config Config
	// closed indicates if the driver has been shut down
	closed atomic.Bool
	// loopRunning indicates if Loop is currently running
	loopRunning atomic.Bool

	// ISR-task boundary
	rx       *sbuf.RxBuffer
	tx       sbuf.TxBuffer
	rxNotify *notifier

	// sessionMu serializes whole command exchanges; only one caller
	// holds it at a time.
	sessionMu sync.Mutex
	// registryMu guards the handler registry and the parsing of each
	// received line.
	registryMu sync.Mutex

	// cmdSlot tells the receive loop which command a caller started;
	// resultSlot carries the outcome back. Both overwrite.
	cmdSlot    *slot[at.Command]
	resultSlot *slot[sessionResult]

	// promptMu guards the pending prompt continuation set by
	// SendPrompted and consumed by the receive loop.
	promptMu sync.Mutex
	prompt   promptContinuation

	// Receive-loop session state, touched only by the Loop
	// goroutine.
	awaited at.Command
	payload strings.Builder

	// Handler registry, guarded by registryMu.
	cmdHandlers []commandEntry
	msgHandlers []messageEntry
}

// sessionResult is what the receive loop hands back to the waiting
// caller when a session reaches a terminal classification.
type sessionResult struct {
	cmd     at.Command
	result  at.Result
	payload string
}

// promptContinuation is the message transmitted when the peripheral
// answers a write command with the '>' prompt.
type promptContinuation struct {
	end     at.PromptEnd
	message string
	valid   bool
}

// New creates a Driver from the given configuration. The receive loop
// is not started; call Loop exactly once afterwards.
func New(config Config) (*Driver, error) {
	config.setDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	return &Driver{
		uart:       config.UART,
		config:     config,
		rx:         sbuf.NewRx(config.RxBufferSize, config.exceptionalChars()),
		rxNotify:   newNotifier(),
		cmdSlot:    newSlot[at.Command](),
		resultSlot: newSlot[sessionResult](),
	}, nil
}

// Close marks the driver as shut down. Commands issued afterwards fail
// with ErrAlreadyClosed. Stop the receive loop by cancelling the
// context passed to Loop.
func (d *Driver) Close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return ErrAlreadyClosed
	}
	return nil
}

// OnRXByte is the receive ISR entry point: call it with every byte the
// UART receives. It never blocks and never allocates.
func (d *Driver) OnRXByte(b byte) {
	if d.rx.PushByte(b) {
		d.rxNotify.notify()
	}
}

// OnTXReady is the transmit ISR entry point: call it every time the
// UART can accept another byte. It sends the next queued byte, or
// disables the TX interrupt when the queue has run dry.
func (d *Driver) OnTXReady() {
	b, ok := d.tx.PopByte()
	if !ok {
		d.uart.DisableTXInterrupt()
		return
	}
	d.uart.SendByte(b)
}
