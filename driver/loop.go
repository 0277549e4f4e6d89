package driver

import (
	"context"

	"github.com/embhost/atlink/at"
)

// Loop is the receive task. It must be called exactly once after New,
// typically on its own goroutine, and runs until ctx is cancelled:
//
//	d, err := driver.New(config)
//	if err != nil { return err }
//	go d.Loop(ctx)
//
// Each wake-up from the RX interrupt drains the completed lines from
// the receive ring. Every line is classified against the command the
// loop is currently awaiting: payload lines accumulate, a terminal
// line releases the waiting caller through the result slot, the '>'
// prompt triggers the pending continuation, and everything else goes
// through the unsolicited handler registry.
func (d *Driver) Loop(ctx context.Context) error {
	if !d.loopRunning.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer d.loopRunning.Store(false)

	d.uart.EnableRXInterrupt()

	for {
		n, err := d.rxNotify.wait(ctx)
		if err != nil {
			return err
		}
		for ; n > 0; n-- {
			line := d.rx.PopLine()
			if line == "" {
				continue
			}
			d.handleLine(line)
		}
	}
}

func (d *Driver) handleLine(line string) {
	// A caller that started a new session overrides whatever was
	// awaited before; a stale half-accumulated payload is dropped
	// with it.
	if cmd, ok := d.cmdSlot.tryTake(); ok {
		d.payload.Reset()
		d.awaited = cmd
	}

	d.registryMu.Lock()
	res := d.consume(line)
	d.registryMu.Unlock()

	switch {
	case res.IsTerminal():
		d.resultSlot.overwrite(sessionResult{
			cmd:     d.awaited,
			result:  res,
			payload: d.takePayload(),
		})
		d.awaited = at.None
	case res == at.ResultPrompt:
		d.continuePrompt()
	}
}

// consume classifies one line and performs the matching side effect:
// accumulate payload, or dispatch through the unsolicited registry.
// Caller holds registryMu.
func (d *Driver) consume(line string) at.Result {
	if d.awaited.IsNone() {
		d.dispatchUnsolicited(line)
		return at.ResultUnknown
	}

	if at.IsEcho(line) {
		return at.ResultUnknown
	}

	res := at.Classify(line, d.awaited)
	switch res {
	case at.ResultCMEError:
		d.appendPayload(at.TrimCMEError(line))
	case at.ResultHandling:
		if at.Matches(line, d.awaited) {
			line = at.TrimResponsePrefix(line, d.awaited)
		}
		d.appendPayload(line)
	case at.ResultUnknown:
		d.dispatchUnsolicited(line)
	}
	return res
}

// appendPayload adds one line to the session payload, separating it
// from what is already accumulated with CRLF.
func (d *Driver) appendPayload(s string) {
	if d.payload.Len() > 0 {
		d.payload.WriteString(at.CRLF)
	}
	d.payload.WriteString(s)
}

func (d *Driver) takePayload() string {
	s := d.payload.String()
	d.payload.Reset()
	return s
}

// continuePrompt transmits the pending prompted message. The TX
// interrupt is necessarily disabled here: the prompt only arrives
// after the command queued by SendPrompted has fully drained.
func (d *Driver) continuePrompt() {
	d.promptMu.Lock()
	p := d.prompt
	d.prompt = promptContinuation{}
	d.promptMu.Unlock()

	if !p.valid {
		return
	}

	suffix := at.CRLF
	if p.end == at.PromptEndCtrlZ {
		suffix = at.CtrlZ + at.CRLF
	}

	d.tx.Push(p.message)
	d.tx.Push(suffix)
	d.uart.EnableTXInterrupt()
}
