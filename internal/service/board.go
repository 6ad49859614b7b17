package service

import (
	"sync"

	"reviewdesk/internal/model"
)

// Board is the console's cached, non-authoritative copy of the record list.
// It is always replaced whole. Every refresh takes a ticket before its request
// goes out, and a result is applied only if no later ticket has been applied
// already, so a slow earlier response never overwrites a faster later one.
type Board struct {
	mu      sync.Mutex
	next    uint64
	applied uint64
	records []model.DocumentRecord
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{records: []model.DocumentRecord{}}
}

// Ticket reserves the next sequence number.
func (b *Board) Ticket() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	return b.next
}

// Apply replaces the list if ticket is newer than the last applied one.
// It reports whether the records were applied.
func (b *Board) Apply(ticket uint64, records []model.DocumentRecord) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ticket <= b.applied {
		return false
	}
	b.applied = ticket
	b.records = append(make([]model.DocumentRecord, 0, len(records)), records...)
	return true
}

// Snapshot returns a copy of the current list.
func (b *Board) Snapshot() []model.DocumentRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append(make([]model.DocumentRecord, 0, len(b.records)), b.records...)
}
