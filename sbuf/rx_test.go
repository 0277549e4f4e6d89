package sbuf_test

import (
	"strings"
	"testing"

	"github.com/embhost/atlink/sbuf"
)

// feed pushes every byte of s and returns how many times PushByte
// reported a completed line.
func feed(r *sbuf.RxBuffer, s string) int {
	ends := 0
	for i := 0; i < len(s); i++ {
		if r.PushByte(s[i]) {
			ends++
		}
	}
	return ends
}

func TestRxBufferLines(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		exceptional string
		expected    []string
	}{
		{
			name:     "Single line",
			input:    "OK\r\n",
			expected: []string{"OK"},
		},
		{
			name:     "Multiple lines",
			input:    "+CSQ: 15,99\r\nOK\r\n",
			expected: []string{"+CSQ: 15,99", "OK"},
		},
		{
			name:     "Back-to-back terminators produce no empty lines",
			input:    "\r\n\r\nOK\r\n\r\n",
			expected: []string{"OK"},
		},
		{
			name:     "Lone CR terminates",
			input:    "OK\r",
			expected: []string{"OK"},
		},
		{
			name:     "NUL terminates",
			input:    "OK\x00",
			expected: []string{"OK"},
		},
		{
			name:        "Prompt alone is a line",
			input:       ">",
			exceptional: ">",
			expected:    []string{">"},
		},
		{
			name:        "Prompt only counts at line start",
			input:       "a>b\r\n",
			exceptional: ">",
			expected:    []string{"a>b"},
		},
		{
			name:        "Prompt after a complete line",
			input:       "OK\r\n>",
			exceptional: ">",
			expected:    []string{"OK", ">"},
		},
		{
			name:     "Prompt without registration stays pending",
			input:    ">",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sbuf.NewRx(64, tt.exceptional)
			ends := feed(r, tt.input)
			if ends != len(tt.expected) {
				t.Errorf("expected %d line-end signals, got %d", len(tt.expected), ends)
			}

			var lines []string
			for !r.Empty() {
				lines = append(lines, r.PopLine())
			}
			if len(lines) != len(tt.expected) {
				t.Fatalf("expected %d lines, got %d: %q", len(tt.expected), len(lines), lines)
			}
			for i, want := range tt.expected {
				if lines[i] != want {
					t.Errorf("line %d: expected %q, got %q", i, want, lines[i])
				}
			}

			if got := r.PopLine(); got != "" {
				t.Errorf("drained buffer should pop empty string, got %q", got)
			}
		})
	}
}

func TestRxBufferWrapAround(t *testing.T) {
	r := sbuf.NewRx(16, "")

	// Walk the indexes most of the way around the ring so the next
	// line straddles the seam.
	for i := 0; i < 3; i++ {
		feed(r, "abcd\r\n")
		if got := r.PopLine(); got != "abcd" {
			t.Fatalf("expected %q, got %q", "abcd", got)
		}
	}

	line := "0123456789"
	feed(r, line+"\r\n")
	if got := r.PopLine(); got != line {
		t.Errorf("wrapped line: expected %q, got %q", line, got)
	}
}

func TestRxBufferInterleavedPushPop(t *testing.T) {
	r := sbuf.NewRx(32, "")

	feed(r, "first\r\nsec")
	if got := r.PopLine(); got != "first" {
		t.Fatalf("expected %q, got %q", "first", got)
	}
	if !r.Empty() {
		t.Fatal("partial line should not be poppable")
	}
	feed(r, "ond\r\n")
	if got := r.PopLine(); got != "second" {
		t.Errorf("expected %q, got %q", "second", got)
	}
}

func TestRxBufferLongLine(t *testing.T) {
	r := sbuf.NewRx(256, "")
	line := strings.Repeat("x", 200)
	feed(r, line+"\r\n")
	if got := r.PopLine(); got != line {
		t.Errorf("expected %d bytes back, got %d", len(line), len(got))
	}
}

func TestNewRxPanicsOnBadSize(t *testing.T) {
	for _, size := range []int{0, -1, 100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewRx(%d) should panic", size)
				}
			}()
			sbuf.NewRx(size, "")
		}()
	}
}
