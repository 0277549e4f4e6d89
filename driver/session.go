package driver

import (
	"context"

	"github.com/embhost/atlink/at"
)

// Send issues an EXEC, READ or TEST command and waits for its terminal
// response. The returned payload is the accumulated response body with
// headers stripped; it is empty for Timeout, and for Error it holds only
// the payload lines that preceded the ERROR line, usually none. The
// error return carries driver-state faults only, never protocol
// failures.
//
// The wait is bounded by ctx; when ctx has no deadline the configured
// ATTimeout applies. On timeout the session mutex is released even
// though the peripheral may still answer; the late response is
// discarded by the next caller's command-match check.
func (d *Driver) Send(ctx context.Context, cmd at.Command, kind at.Kind) (at.Result, string, error) {
	if kind == at.KindWrite {
		return at.ResultUnknown, "", ErrWritePayload
	}
	return d.exchange(ctx, cmd, cmd.Compose(kind)+at.CRLF)
}

// SendWrite issues a WRITE command: header, '=', payload, CRLF.
func (d *Driver) SendWrite(ctx context.Context, cmd at.Command, payload string) (at.Result, string, error) {
	return d.exchange(ctx, cmd, cmd.Compose(at.KindWrite), payload, at.CRLF)
}

// SendPrompted issues a WRITE command whose peripheral answers with
// the '>' prompt and expects a follow-on message. When the prompt
// arrives the receive loop transmits message terminated per the end
// policy: CTRL-Z plus CRLF, or CRLF alone. The exchange then completes
// like any other write.
func (d *Driver) SendPrompted(ctx context.Context, cmd at.Command, payload, message string, end at.PromptEnd) (at.Result, error) {
	d.promptMu.Lock()
	d.prompt = promptContinuation{end: end, message: message, valid: true}
	d.promptMu.Unlock()

	res, _, err := d.exchange(ctx, cmd, cmd.Compose(at.KindWrite), payload, at.CRLF)
	return res, err
}

// exchange runs one full command exchange: serialize against other
// callers, announce the session to the receive loop, stream the
// chunks out, then wait for the matching result.
func (d *Driver) exchange(ctx context.Context, cmd at.Command, chunks ...string) (at.Result, string, error) {
	if d.closed.Load() {
		return at.ResultUnknown, "", ErrAlreadyClosed
	}

	if _, ok := ctx.Deadline(); !ok && d.config.ATTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.ATTimeout)
		defer cancel()
	}

	d.sessionMu.Lock()
	defer d.sessionMu.Unlock()

	d.cmdSlot.overwrite(cmd)

	// The previous exchange's strings can be released now: the TX
	// interrupt is disabled between commands.
	d.tx.Clean()
	for _, c := range chunks {
		d.tx.Push(c)
	}
	d.uart.EnableTXInterrupt()

	for {
		res, ok := d.resultSlot.take(ctx)
		if !ok {
			return at.ResultTimeout, "", nil
		}
		if res.cmd != cmd {
			// A stale result from a session that timed out
			// before we took the mutex. Keep waiting for ours.
			continue
		}
		return res.result, res.payload, nil
	}
}
