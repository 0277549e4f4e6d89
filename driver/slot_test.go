package driver

import (
	"context"
	"testing"
	"time"
)

func TestSlotOverwrite(t *testing.T) {
	s := newSlot[int]()

	if _, ok := s.tryTake(); ok {
		t.Error("empty slot should not yield a value")
	}

	s.overwrite(1)
	s.overwrite(2)

	v, ok := s.tryTake()
	if !ok || v != 2 {
		t.Errorf("expected overwritten value 2, got %d (ok=%v)", v, ok)
	}
	if _, ok := s.tryTake(); ok {
		t.Error("slot should be empty after take")
	}
}

func TestSlotTakeTimeout(t *testing.T) {
	s := newSlot[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, ok := s.take(ctx); ok {
		t.Error("take on empty slot should time out")
	}
}

func TestSlotTakePresentValueDespiteExpiredContext(t *testing.T) {
	s := newSlot[int]()
	s.overwrite(7)

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()

	// Zero-timeout take still polls the cell.
	if v, ok := s.take(ctx); !ok || v != 7 {
		t.Errorf("expected (7, true), got (%d, %v)", v, ok)
	}
}

func TestSlotTakeBlocksUntilWrite(t *testing.T) {
	s := newSlot[int]()

	go func() {
		time.Sleep(5 * time.Millisecond)
		s.overwrite(9)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if v, ok := s.take(ctx); !ok || v != 9 {
		t.Errorf("expected (9, true), got (%d, %v)", v, ok)
	}
}

func TestSlotStaleTokenDoesNotYieldValue(t *testing.T) {
	s := newSlot[int]()

	// overwrite twice then take once leaves a token in the ready
	// channel with nothing behind it.
	s.overwrite(1)
	s.overwrite(2)
	if _, ok := s.tryTake(); !ok {
		t.Fatal("expected a value")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, ok := s.take(ctx); ok {
		t.Error("stale wake-up token must not produce a value")
	}
}

func TestNotifier(t *testing.T) {
	n := newNotifier()

	n.notify()
	n.notify()
	n.notify()

	ctx := context.Background()
	c, err := n.wait(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != 3 {
		t.Errorf("expected 3 pending events, got %d", c)
	}

	ctx2, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := n.wait(ctx2); err == nil {
		t.Error("wait with nothing pending should fail on context expiry")
	}
}
