package at

import "strings"

// Compose renders the command header ready to be put on the wire:
// "AT" for Base, "AT<name>" for bare commands, "AT+<name>" for
// extended ones, followed by the kind suffix ('?' for read, "=?" for
// test, '=' for write, nothing for exec).
//
// The CRLF trailer is the transmit path's job, not the composer's: a
// prompted write splits its transmission in two and must not
// terminate the header early.
func (c Command) Compose(kind Kind) string {
	var b strings.Builder
	b.Grow(len(echoPrefix) + len(c.name) + 3)

	b.WriteString(echoPrefix)
	if c.class == classExtended {
		b.WriteByte('+')
	}
	b.WriteString(c.name)

	switch kind {
	case KindRead:
		b.WriteByte('?')
	case KindTest:
		b.WriteString("=?")
	case KindWrite:
		b.WriteByte('=')
	}

	return b.String()
}
