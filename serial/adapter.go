package serial

import (
	"io"
	"sync"
	"sync/atomic"
)

// Adapter implements the driver's UART abstraction over a byte stream.
// A reader goroutine plays the RX interrupt, delivering each received
// byte to the attached handler; a transmit pump plays the TX
// interrupt, asking the driver for bytes while transmission is
// enabled.
//
// Wire it up in this order: create the driver with the adapter as its
// UART, Attach the driver's ISR entry points, then start the driver's
// receive loop.
//
//	ad := serial.NewAdapter(port)
//	d, err := driver.New(config) // config.UART = ad
//	ad.Attach(d.OnRXByte, d.OnTXReady)
//	go d.Loop(ctx)
type Adapter struct {
	rw io.ReadWriteCloser

	onRXByte  func(b byte)
	onTXReady func()

	txOn   atomic.Bool
	txKick chan struct{} // capacity 1

	rxOnce   sync.Once
	stopOnce sync.Once
	stopped  chan struct{}

	// rxDone is closed when the reader goroutine exits; readErr then
	// holds the error that stopped it.
	rxDone  chan struct{}
	errMu   sync.Mutex
	readErr error
}

// NewAdapter wraps an open byte stream, typically the port returned by
// Dialer.Dial.
func NewAdapter(rw io.ReadWriteCloser) *Adapter {
	return &Adapter{
		rw:      rw,
		txKick:  make(chan struct{}, 1),
		stopped: make(chan struct{}),
		rxDone:  make(chan struct{}),
	}
}

// Attach wires the adapter to the driver's ISR entry points and starts
// the transmit pump. Must be called before the driver's receive loop
// is started.
func (a *Adapter) Attach(onRXByte func(b byte), onTXReady func()) {
	a.onRXByte = onRXByte
	a.onTXReady = onTXReady
	go a.txPump()
}

// EnableRXInterrupt starts the reader goroutine. Called by the
// driver's receive loop.
func (a *Adapter) EnableRXInterrupt() {
	a.rxOnce.Do(func() {
		go a.rxPump()
	})
}

// EnableTXInterrupt resumes the transmit pump.
func (a *Adapter) EnableTXInterrupt() {
	a.txOn.Store(true)
	select {
	case a.txKick <- struct{}{}:
	default:
	}
}

// DisableTXInterrupt pauses the transmit pump. The driver calls this
// from OnTXReady when its transmit buffer runs dry.
func (a *Adapter) DisableTXInterrupt() {
	a.txOn.Store(false)
}

// SendByte writes one byte to the port.
func (a *Adapter) SendByte(b byte) {
	a.rw.Write([]byte{b})
}

// Close stops both pumps and closes the underlying stream.
func (a *Adapter) Close() error {
	var err error
	a.stopOnce.Do(func() {
		close(a.stopped)
		err = a.rw.Close()
	})
	return err
}

// Done is closed when the reader goroutine has exited, either through
// Close or a port error.
func (a *Adapter) Done() <-chan struct{} {
	return a.rxDone
}

// Err returns the error that stopped the reader, nil while it runs.
func (a *Adapter) Err() error {
	a.errMu.Lock()
	defer a.errMu.Unlock()
	return a.readErr
}

func (a *Adapter) rxPump() {
	defer close(a.rxDone)
	buf := make([]byte, 256)
	for {
		n, err := a.rw.Read(buf)
		for i := 0; i < n; i++ {
			a.onRXByte(buf[i])
		}
		if err != nil {
			a.errMu.Lock()
			a.readErr = err
			a.errMu.Unlock()
			return
		}
	}
}

func (a *Adapter) txPump() {
	for {
		select {
		case <-a.stopped:
			return
		case <-a.txKick:
			for a.txOn.Load() {
				a.onTXReady()
			}
		}
	}
}
