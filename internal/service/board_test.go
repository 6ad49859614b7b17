package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"reviewdesk/internal/model"
)

func TestBoard_DiscardsStaleResults(t *testing.T) {
	b := NewBoard()

	slow := b.Ticket()
	fast := b.Ticket()

	assert.True(t, b.Apply(fast, []model.DocumentRecord{{Filename: "policy.docx", HasDraft: true, Approved: true}}))
	assert.False(t, b.Apply(slow, []model.DocumentRecord{{Filename: "policy.docx", HasDraft: true}}))

	assert.Equal(t, []model.DocumentRecord{{Filename: "policy.docx", HasDraft: true, Approved: true}}, b.Snapshot())
}

func TestBoard_ReplacesWholeList(t *testing.T) {
	b := NewBoard()
	assert.Empty(t, b.Snapshot())

	b.Apply(b.Ticket(), []model.DocumentRecord{{Filename: "a.docx"}, {Filename: "b.docx"}})
	b.Apply(b.Ticket(), []model.DocumentRecord{{Filename: "c.docx"}})

	assert.Equal(t, []model.DocumentRecord{{Filename: "c.docx"}}, b.Snapshot())
}

func TestBoard_SnapshotIsACopy(t *testing.T) {
	b := NewBoard()
	in := []model.DocumentRecord{{Filename: "a.docx"}}
	b.Apply(b.Ticket(), in)
	in[0].Filename = "mutated"

	snap := b.Snapshot()
	snap[0].Approved = true

	assert.Equal(t, []model.DocumentRecord{{Filename: "a.docx"}}, b.Snapshot())
}

func TestBoard_ConcurrentTickets(t *testing.T) {
	b := NewBoard()
	var wg sync.WaitGroup
	seen := make(chan uint64, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- b.Ticket()
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[uint64]bool{}
	for s := range seen {
		unique[s] = true
	}
	assert.Len(t, unique, 100)
}
