package at

import "strings"

// IsEcho reports whether the line is a local echo of a transmitted
// command. Any line starting with "AT" counts, so a peripheral
// message that happens to begin with those letters would be dropped
// too; no known modem emits one.
func IsEcho(line string) bool {
	return strings.HasPrefix(line, echoPrefix)
}

// Matches reports whether the line starts with "+<name>" for the
// given command. Only the name prefix is compared, the way the
// peripheral formats response headers ("+CREG: 0,1").
func Matches(line string, c Command) bool {
	return len(line) > 1 && line[0] == '+' && strings.HasPrefix(line[1:], c.name)
}

// Classify maps one received line to its meaning for the session
// awaiting the given command.
//
// With awaited == None nothing can be solicited, so every line is
// Unknown and belongs to the unsolicited path. Echoes are Unknown
// and must not be dispatched to handlers. Then the ladder: exact
// "OK", "ERROR" and ">" matches, the "+CME ERROR" prefix, and
// finally payload attribution for extended commands.
//
// A line without a '+' header received while an extended command is
// awaited is attributed to that session. This means a bare
// unsolicited line (such as "RING") arriving mid-session lands in the
// payload; register such strings as unsolicited messages and avoid
// long-running sessions on chatty peripherals.
func Classify(line string, awaited Command) Result {
	if line == "" || awaited.IsNone() || IsEcho(line) {
		return ResultUnknown
	}

	switch line {
	case OK:
		return ResultOK
	case Error:
		return ResultError
	case Prompt:
		return ResultPrompt
	}
	if strings.HasPrefix(line, CMEErrorPrefix) {
		return ResultCMEError
	}

	if awaited.IsExtended() {
		if line[0] != '+' {
			return ResultHandling
		}
		if Matches(line, awaited) {
			return ResultHandling
		}
	}

	return ResultUnknown
}

// TrimResponsePrefix strips the "+<name>:" header from a line already
// known to match the command, plus one space after the colon when
// present. "+CSQ: 15,99" and "+CSQ:15,99" both yield "15,99".
func TrimResponsePrefix(line string, c Command) string {
	n := 1 + len(c.name) + 1
	if n >= len(line) {
		return ""
	}
	rest := line[n:]
	if rest[0] == ' ' {
		rest = rest[1:]
	}
	return rest
}

// TrimCMEError strips the "+CME ERROR" literal, leaving the detail
// (typically ": <code>") intact.
func TrimCMEError(line string) string {
	return strings.TrimPrefix(line, CMEErrorPrefix)
}
