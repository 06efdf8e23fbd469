package dispatch

import (
	"testing"
	"time"

	"slash-command-kit/internal/interaction"

	"github.com/bwmarrin/discordgo"
)

type fakeItem struct {
	id        string
	refreshed bool
}

func (f *fakeItem) CustomID() string                            { return f.id }
func (f *fakeItem) RefreshState(_ *discordgo.InteractionCreate) { f.refreshed = true }

type fakeView struct {
	dispatched interaction.Item
}

func (f *fakeView) Components() []discordgo.MessageComponent { return nil }
func (f *fakeView) Children() []interaction.Item             { return nil }
func (f *fakeView) DispatchItem(item interaction.Item, _ interaction.ResponseSession, _ *discordgo.InteractionCreate) {
	f.dispatched = item
}

func TestComponentTable_BindAndGet(t *testing.T) {
	table := NewComponentTable(0)
	view := &fakeView{}
	item := &fakeItem{id: "btn-1"}

	table.Bind("btn-1", view, item)

	gotView, gotItem, ok := table.Get("btn-1")
	if !ok {
		t.Fatal("Expected binding to be found")
	}
	if gotView != interaction.View(view) || gotItem != interaction.Item(item) {
		t.Error("Expected the bound view and item back")
	}
}

func TestComponentTable_GetUnknown(t *testing.T) {
	table := NewComponentTable(0)
	if _, _, ok := table.Get("nope"); ok {
		t.Error("Expected miss for an unbound custom id")
	}
}

func TestComponentTable_TTLExpiry(t *testing.T) {
	table := NewComponentTable(time.Minute)
	now := time.Unix(1000, 0)
	table.now = func() time.Time { return now }

	table.Bind("btn-1", &fakeView{}, &fakeItem{id: "btn-1"})

	if _, _, ok := table.Get("btn-1"); !ok {
		t.Fatal("Expected binding before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, _, ok := table.Get("btn-1"); ok {
		t.Error("Expected expired binding to count as absent")
	}
	if table.Len() != 0 {
		t.Errorf("Expected expired binding to be dropped, table has %d", table.Len())
	}
}

func TestComponentTable_RebindResetsTTL(t *testing.T) {
	table := NewComponentTable(time.Minute)
	now := time.Unix(1000, 0)
	table.now = func() time.Time { return now }

	view := &fakeView{}
	item := &fakeItem{id: "btn-1"}
	table.Bind("btn-1", view, item)

	now = now.Add(45 * time.Second)
	table.Bind("btn-1", view, item)

	now = now.Add(45 * time.Second) // 90s after the first bind, 45s after the second
	if _, _, ok := table.Get("btn-1"); !ok {
		t.Error("Expected re-bound binding to survive past the original expiry")
	}
}

func TestComponentTable_ZeroTTLNeverExpires(t *testing.T) {
	table := NewComponentTable(0)
	now := time.Unix(1000, 0)
	table.now = func() time.Time { return now }

	table.Bind("btn-1", &fakeView{}, &fakeItem{id: "btn-1"})

	now = now.Add(24 * time.Hour)
	if _, _, ok := table.Get("btn-1"); !ok {
		t.Error("Expected binding to survive without a TTL")
	}
	if got := table.EvictExpired(); got != 0 {
		t.Errorf("Expected no evictions without a TTL, got %d", got)
	}
}

func TestComponentTable_Release(t *testing.T) {
	table := NewComponentTable(0)
	table.Bind("btn-1", &fakeView{}, &fakeItem{id: "btn-1"})

	table.Release("btn-1")
	if _, _, ok := table.Get("btn-1"); ok {
		t.Error("Expected released binding to be gone")
	}
}

func TestComponentTable_ReleaseView(t *testing.T) {
	table := NewComponentTable(0)

	mine := &fakeView{}
	other := &fakeView{}
	table.Bind("mine-1", mine, &fakeItem{id: "mine-1"})
	table.Bind("mine-2", mine, &fakeItem{id: "mine-2"})
	table.Bind("other-1", other, &fakeItem{id: "other-1"})

	table.ReleaseView(mine)

	if _, _, ok := table.Get("mine-1"); ok {
		t.Error("Expected mine-1 to be released")
	}
	if _, _, ok := table.Get("mine-2"); ok {
		t.Error("Expected mine-2 to be released")
	}
	if _, _, ok := table.Get("other-1"); !ok {
		t.Error("Expected the other view's binding to survive")
	}
}

func TestComponentTable_EvictExpired(t *testing.T) {
	table := NewComponentTable(time.Minute)
	now := time.Unix(1000, 0)
	table.now = func() time.Time { return now }

	table.Bind("old-1", &fakeView{}, &fakeItem{id: "old-1"})
	table.Bind("old-2", &fakeView{}, &fakeItem{id: "old-2"})

	now = now.Add(30 * time.Second)
	table.Bind("fresh", &fakeView{}, &fakeItem{id: "fresh"})

	now = now.Add(45 * time.Second) // old-* are 75s old, fresh is 45s old

	if got := table.EvictExpired(); got != 2 {
		t.Errorf("Expected 2 evictions, got %d", got)
	}
	if table.Len() != 1 {
		t.Errorf("Expected 1 surviving binding, got %d", table.Len())
	}
	if _, _, ok := table.Get("fresh"); !ok {
		t.Error("Expected the fresh binding to survive the sweep")
	}
}
