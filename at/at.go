// Package at defines the vocabulary of Hayes-style AT exchanges: command
// identifiers, command kinds, response classification and header
// composition. It is pure string manipulation with no I/O; the driver
// package supplies the stateful side.
package at

import "strings"

const (
	// Terminal control
	CRLF   = "\r\n"
	Prompt = ">"
	CtrlZ  = "\x1a"

	// Response codes
	OK             = "OK"
	Error          = "ERROR"
	CMEErrorPrefix = "+CME ERROR"

	// Local echo marker. Responses never start with it; echoed
	// commands always do.
	echoPrefix = "AT"
)

// Kind selects the trailing syntax of a composed command.
type Kind int

const (
	// KindExec sends the bare header, e.g. "AT+CREG".
	KindExec Kind = iota
	// KindWrite appends '=', the payload follows, e.g. "AT+CREG=2".
	KindWrite
	// KindRead appends '?', e.g. "AT+CREG?".
	KindRead
	// KindTest appends "=?", e.g. "AT+CREG=?".
	KindTest
)

// PromptEnd selects how a prompted message is terminated after the
// peripheral's '>' request.
type PromptEnd int

const (
	// PromptEndCtrlZ terminates the prompted message with CTRL-Z.
	PromptEndCtrlZ PromptEnd = iota
	// PromptEndCRLF terminates the prompted message with a plain CRLF.
	PromptEndCRLF
)

// Message identifies an unsolicited line that carries no AT or '+'
// header, e.g. Message("RING") or Message("NO CARRIER"). Matching is
// by prefix against the incoming line.
type Message string

type cmdClass uint8

const (
	classNone cmdClass = iota
	classBase
	classBare
	classExtended
)

// Command identifies one AT command from the user's command set.
// Commands are comparable values; declare them once at package level:
//
//	var (
//		cmdEchoOff = at.Bare("E0")
//		cmdCREG    = at.Extended("CREG")
//	)
//
// The zero value is None.
type Command struct {
	name  string
	class cmdClass
}

var (
	// None means no command is awaited. It is the zero Command.
	None = Command{}

	// Base is the bare "AT" with no suffix.
	Base = Command{class: classBase}
)

// Bare declares a command outside the '+' namespace, e.g. "E0", "D",
// "S0". The name is upper-cased.
func Bare(name string) Command {
	return Command{name: strings.ToUpper(name), class: classBare}
}

// Extended declares a command in the '+' namespace, e.g. "CREG". The
// name is upper-cased and stored without the '+'.
func Extended(name string) Command {
	return Command{name: strings.ToUpper(name), class: classExtended}
}

// Name returns the upper-case command name without the "AT" or '+'
// prefix. Empty for None and Base.
func (c Command) Name() string { return c.name }

// IsExtended reports whether the command lives in the '+' namespace.
func (c Command) IsExtended() bool { return c.class == classExtended }

// IsNone reports whether the command is the None sentinel.
func (c Command) IsNone() bool { return c.class == classNone }

func (c Command) String() string {
	if c.class == classNone {
		return "<none>"
	}
	return c.Compose(KindExec)
}

// Result classifies a received line, and doubles as the final outcome
// of a command exchange. ResultHandling and ResultPrompt are internal
// to a running session; callers only ever observe OK, Error, CMEError,
// Timeout or Unknown.
type Result int

const (
	ResultOK Result = iota
	ResultError
	ResultCMEError
	ResultHandling
	ResultPrompt
	ResultUnknown
	ResultTimeout
)

var resultNames = [...]string{
	ResultOK:       "ok",
	ResultError:    "error",
	ResultCMEError: "cme error",
	ResultHandling: "handling command",
	ResultPrompt:   "prompt request",
	ResultUnknown:  "unknown",
	ResultTimeout:  "timeout",
}

func (r Result) String() string {
	if r < 0 || int(r) >= len(resultNames) {
		return "invalid"
	}
	return resultNames[r]
}

// IsTerminal reports whether the result concludes a session.
func (r Result) IsTerminal() bool {
	return r == ResultOK || r == ResultError || r == ResultCMEError
}
