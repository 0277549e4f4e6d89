package driver

import (
	"strings"

	"github.com/embhost/atlink/at"
)

// CommandHandler consumes one unsolicited "+<name>: …" line; it
// receives the payload with the header stripped. The return value
// reports whether the handler should be removed from the registry: a
// one-shot handler returns true on its first call, a permanent one
// always returns false.
//
// Handlers run on the receive-loop goroutine and must not block.
type CommandHandler func(payload string) (remove bool)

// MessageHandler consumes one unsolicited message line such as "RING".
// The return value reports whether the handler should be removed, as
// with CommandHandler.
type MessageHandler func() (remove bool)

type commandEntry struct {
	cmd at.Command
	fn  CommandHandler
}

type messageEntry struct {
	msg at.Message
	fn  MessageHandler
}

// RegisterUnsolicited adds a handler for unsolicited lines headed by
// the given extended command. Handlers are consulted in registration
// order and the first match consumes the line. Safe to call before
// Loop is started.
func (d *Driver) RegisterUnsolicited(cmd at.Command, fn CommandHandler) {
	d.registryMu.Lock()
	d.cmdHandlers = append(d.cmdHandlers, commandEntry{cmd: cmd, fn: fn})
	d.registryMu.Unlock()
}

// RegisterUnsolicitedMessage adds a handler for unsolicited lines
// beginning with the given message token.
func (d *Driver) RegisterUnsolicitedMessage(msg at.Message, fn MessageHandler) {
	d.registryMu.Lock()
	d.msgHandlers = append(d.msgHandlers, messageEntry{msg: msg, fn: fn})
	d.registryMu.Unlock()
}

// dispatchUnsolicited routes a line the session did not claim: first
// through the command handlers, then through the message handlers. The
// first matching handler consumes the line; a line matching nothing is
// dropped. Caller holds registryMu.
func (d *Driver) dispatchUnsolicited(line string) {
	// Echoes never reach handlers, not even when no session claims
	// them.
	if at.IsEcho(line) {
		return
	}

	for i, h := range d.cmdHandlers {
		if !at.Matches(line, h.cmd) {
			continue
		}
		if h.fn(at.TrimResponsePrefix(line, h.cmd)) {
			d.cmdHandlers = append(d.cmdHandlers[:i], d.cmdHandlers[i+1:]...)
		}
		return
	}

	for i, h := range d.msgHandlers {
		if !strings.HasPrefix(line, string(h.msg)) {
			continue
		}
		if h.fn() {
			d.msgHandlers = append(d.msgHandlers[:i], d.msgHandlers[i+1:]...)
		}
		return
	}
}
