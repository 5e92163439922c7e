package netsync

import (
	"log"

	"github.com/stormfell/vantage-mp/shared/messages"
)

// InputBuffer is the ordered log of locally issued commands that the server
// has not yet acknowledged. Sequence numbers are strictly increasing and
// contiguous; the pending slice is exactly what reconciliation replays.
type InputBuffer struct {
	pending    []messages.MoveCommand
	lastIssued uint64
}

// NewInputBuffer returns an empty buffer expecting sequence 1 first.
func NewInputBuffer() *InputBuffer {
	return &InputBuffer{}
}

// Push appends a command. A non-contiguous sequence is a programmer error in
// the issuing path, not a network condition; it is logged and the buffer
// clamps by discarding pending state so the next snapshot re-anchors cleanly.
func (b *InputBuffer) Push(cmd messages.MoveCommand) {
	if b.lastIssued != 0 && cmd.Sequence != b.lastIssued+1 {
		log.Printf("[netsync] sequence gap: pushed %d after %d, dropping pending commands", cmd.Sequence, b.lastIssued)
		b.pending = b.pending[:0]
	}
	b.pending = append(b.pending, cmd)
	b.lastIssued = cmd.Sequence
}

// Acknowledge removes and returns every buffered command with sequence <=
// upto. Calling it again with the same sequence removes nothing.
func (b *InputBuffer) Acknowledge(upto uint64) []messages.MoveCommand {
	cut := 0
	for cut < len(b.pending) && b.pending[cut].Sequence <= upto {
		cut++
	}
	if cut == 0 {
		return nil
	}
	acked := make([]messages.MoveCommand, cut)
	copy(acked, b.pending[:cut])
	b.pending = append(b.pending[:0], b.pending[cut:]...)
	return acked
}

// Pending returns the unacknowledged commands in sequence order. The slice
// is owned by the buffer; callers must not retain it across a Push.
func (b *InputBuffer) Pending() []messages.MoveCommand {
	return b.pending
}

// EvictStale drops commands older than the retention window, measured by
// server-adjusted issue time. Replay correctness under extreme loss is
// traded for bounded memory during sustained disconnection; the returned
// count is for logging.
func (b *InputBuffer) EvictStale(retentionMs, nowServerMs float64) int {
	horizon := nowServerMs - retentionMs
	cut := 0
	for cut < len(b.pending) && b.pending[cut].ServerTimestamp < horizon {
		cut++
	}
	if cut == 0 {
		return 0
	}
	b.pending = append(b.pending[:0], b.pending[cut:]...)
	return cut
}

// Clear drops everything, including the issued-sequence watermark. Used on
// hard resets (reconnect, server sequence ahead of local issuance).
func (b *InputBuffer) Clear() {
	b.pending = b.pending[:0]
	b.lastIssued = 0
}

// Len returns the number of unacknowledged commands.
func (b *InputBuffer) Len() int { return len(b.pending) }

// LastIssued returns the highest sequence ever pushed, or 0.
func (b *InputBuffer) LastIssued() uint64 { return b.lastIssued }
