package agent_test

import (
	"fmt"
	"testing"

	"opsagent/internal/domain/agent"
)

func TestHistoryAppendAndList(t *testing.T) {
	h := agent.NewHistory(10)

	for i := 0; i < 3; i++ {
		h.Append(agent.Exchange{ID: fmt.Sprintf("ex-%d", i), Command: fmt.Sprintf("command %d", i)})
	}

	entries := h.List()
	if len(entries) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(entries))
	}
	for i, e := range entries {
		if want := fmt.Sprintf("ex-%d", i); e.ID != want {
			t.Errorf("entries[%d].ID = %q, want %q (oldest first)", i, e.ID, want)
		}
	}
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := agent.NewHistory(2)

	h.Append(agent.Exchange{ID: "first"})
	h.Append(agent.Exchange{ID: "second"})
	h.Append(agent.Exchange{ID: "third"})

	entries := h.List()
	if len(entries) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(entries))
	}
	if entries[0].ID != "second" || entries[1].ID != "third" {
		t.Errorf("entries = [%s %s], want [second third]", entries[0].ID, entries[1].ID)
	}
}

func TestHistoryDefaultLimit(t *testing.T) {
	h := agent.NewHistory(0)

	for i := 0; i < 150; i++ {
		h.Append(agent.Exchange{ID: fmt.Sprintf("ex-%d", i)})
	}

	if h.Len() != 100 {
		t.Errorf("Len() = %d, want default limit 100", h.Len())
	}
	if first := h.List()[0].ID; first != "ex-50" {
		t.Errorf("oldest surviving entry = %s, want ex-50", first)
	}
}

func TestHistoryClear(t *testing.T) {
	h := agent.NewHistory(10)
	h.Append(agent.Exchange{ID: "ex-1"})
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", h.Len())
	}
	if entries := h.List(); len(entries) != 0 {
		t.Errorf("List() after Clear = %v, want empty", entries)
	}
}

func TestHistoryListReturnsCopy(t *testing.T) {
	h := agent.NewHistory(10)
	h.Append(agent.Exchange{ID: "ex-1", Command: "original"})

	entries := h.List()
	entries[0].Command = "mutated"

	if got := h.List()[0].Command; got != "original" {
		t.Errorf("stored command = %q, want original (List must copy)", got)
	}
}
