package netsync

import (
	"testing"

	"github.com/stormfell/vantage-mp/shared/messages"
)

func cmd(seq uint64) messages.MoveCommand {
	return messages.MoveCommand{Sequence: seq, ServerTimestamp: float64(seq) * 100, MoveX: 1}
}

func pushRange(b *InputBuffer, from, to uint64) {
	for s := from; s <= to; s++ {
		b.Push(cmd(s))
	}
}

func TestAcknowledgeRemovesPrefix(t *testing.T) {
	b := NewInputBuffer()
	pushRange(b, 1, 5)

	acked := b.Acknowledge(3)
	if len(acked) != 3 {
		t.Fatalf("expected 3 acked commands, got %d", len(acked))
	}
	for i, c := range acked {
		if c.Sequence != uint64(i+1) {
			t.Fatalf("acked[%d].Sequence = %d, want %d", i, c.Sequence, i+1)
		}
	}

	pending := b.Pending()
	if len(pending) != 2 || pending[0].Sequence != 4 || pending[1].Sequence != 5 {
		t.Fatalf("unexpected pending after ack: %+v", pending)
	}
}

func TestAcknowledgeIsIdempotent(t *testing.T) {
	b := NewInputBuffer()
	pushRange(b, 1, 4)

	b.Acknowledge(2)
	before := append([]messages.MoveCommand(nil), b.Pending()...)

	if again := b.Acknowledge(2); len(again) != 0 {
		t.Fatalf("second acknowledge removed %d commands", len(again))
	}
	after := b.Pending()
	if len(after) != len(before) {
		t.Fatalf("pending length changed: %d -> %d", len(before), len(after))
	}
	for i := range after {
		if after[i].Sequence != before[i].Sequence {
			t.Fatalf("pending order changed at %d: %d vs %d", i, after[i].Sequence, before[i].Sequence)
		}
	}
}

func TestSequenceGapDropsPending(t *testing.T) {
	b := NewInputBuffer()
	pushRange(b, 1, 3)

	// Skipping 4 is an integration bug; the buffer must clamp rather than
	// hold a non-contiguous log.
	b.Push(cmd(7))

	pending := b.Pending()
	if len(pending) != 1 || pending[0].Sequence != 7 {
		t.Fatalf("expected buffer clamped to [7], got %+v", pending)
	}
	if b.LastIssued() != 7 {
		t.Fatalf("lastIssued = %d, want 7", b.LastIssued())
	}
}

func TestEvictStaleDropsOldestOnly(t *testing.T) {
	b := NewInputBuffer()
	pushRange(b, 1, 10) // timestamps 100..1000

	dropped := b.EvictStale(500, 1000) // horizon at 500: drops ts < 500 → seq 1..4
	if dropped != 4 {
		t.Fatalf("dropped = %d, want 4", dropped)
	}
	if b.Len() != 6 || b.Pending()[0].Sequence != 5 {
		t.Fatalf("unexpected pending after eviction: %+v", b.Pending())
	}
}

func TestClearResetsWatermark(t *testing.T) {
	b := NewInputBuffer()
	pushRange(b, 1, 3)
	b.Clear()

	if b.Len() != 0 || b.LastIssued() != 0 {
		t.Fatalf("clear left state: len=%d lastIssued=%d", b.Len(), b.LastIssued())
	}

	// After a hard reset the sequence counter may restart.
	b.Push(cmd(1))
	if b.Len() != 1 {
		t.Fatalf("push after clear failed: %+v", b.Pending())
	}
}
