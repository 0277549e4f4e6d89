package sbuf

import "slices"

// TxBuffer queues whole strings in task context and hands them out one
// byte at a time from interrupt context. A cursor tracks the current
// string and the offset within it; Push never invalidates the cursor.
//
// Freed memory must not be released from interrupt context, so popped
// strings are retained until Clean is called from task context.
//
// TxBuffer itself is not synchronized. The discipline that keeps it
// safe: Push and Clean run only while the TX interrupt is disabled,
// and PopByte runs only from the TX interrupt.
type TxBuffer struct {
	strings []string
	cur     int // index of the string under the cursor
	off     int // byte offset within strings[cur]
}

// Push appends a string to the transmit queue. If the cursor had
// already consumed everything, it now points at the first byte of the
// appended string. Empty strings are ignored.
func (t *TxBuffer) Push(s string) {
	if s == "" {
		return
	}
	t.strings = append(t.strings, s)
}

// PopByte returns the byte under the cursor and advances it, moving to
// the next queued string when the current one is exhausted. The second
// return value is false when nothing is left to transmit, which is the
// TX interrupt's cue to disable itself.
func (t *TxBuffer) PopByte() (byte, bool) {
	if t.cur >= len(t.strings) {
		return 0, false
	}
	s := t.strings[t.cur]
	c := s[t.off]
	t.off++
	if t.off == len(s) {
		t.cur++
		t.off = 0
	}
	return c, true
}

// Empty reports whether every queued byte has been popped.
func (t *TxBuffer) Empty() bool {
	return t.cur >= len(t.strings)
}

// Clean releases the strings strictly before the cursor. Task context
// only; call it between commands, never while the TX interrupt is
// enabled.
func (t *TxBuffer) Clean() {
	t.strings = slices.Delete(t.strings, 0, t.cur)
	t.cur = 0
}
