package dispatch

import (
	"sync"
	"time"

	"slash-command-kit/internal/interaction"
	"slash-command-kit/internal/metrics"
)

type componentBinding struct {
	view    interaction.View
	item    interaction.Item
	expires time.Time
}

// ComponentTable maps custom ids to (view, item) bindings for component
// dispatch. Bindings carry a TTL and can be released explicitly, so the
// table cannot grow without bound across the life of the process.
type ComponentTable struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]componentBinding
	now   func() time.Time
}

// NewComponentTable builds a table whose bindings expire after ttl; ttl <= 0
// disables expiry and leaves lifetime to explicit release.
func NewComponentTable(ttl time.Duration) *ComponentTable {
	return &ComponentTable{
		ttl:   ttl,
		items: make(map[string]componentBinding),
		now:   time.Now,
	}
}

// Bind implements interaction.Binder. Re-binding a custom id resets its TTL.
func (t *ComponentTable) Bind(customID string, view interaction.View, item interaction.Item) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b := componentBinding{view: view, item: item}
	if t.ttl > 0 {
		b.expires = t.now().Add(t.ttl)
	}
	t.items[customID] = b
	metrics.ComponentBindings.Set(float64(len(t.items)))
}

// Get returns the live binding for a custom id. An expired binding counts as
// absent and is dropped on the spot.
func (t *ComponentTable) Get(customID string) (interaction.View, interaction.Item, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.items[customID]
	if !ok {
		return nil, nil, false
	}
	if !b.expires.IsZero() && t.now().After(b.expires) {
		delete(t.items, customID)
		metrics.ComponentBindings.Set(float64(len(t.items)))
		return nil, nil, false
	}
	return b.view, b.item, true
}

// Release drops one binding.
func (t *ComponentTable) Release(customID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.items, customID)
	metrics.ComponentBindings.Set(float64(len(t.items)))
}

// ReleaseView drops every binding belonging to a view; views call this when
// they stop being interactive.
func (t *ComponentTable) ReleaseView(view interaction.View) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, b := range t.items {
		if b.view == view {
			delete(t.items, id)
		}
	}
	metrics.ComponentBindings.Set(float64(len(t.items)))
}

// EvictExpired sweeps expired bindings and reports how many went. Meant to
// run on a schedule.
func (t *ComponentTable) EvictExpired() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ttl <= 0 {
		return 0
	}
	now := t.now()
	evicted := 0
	for id, b := range t.items {
		if !b.expires.IsZero() && now.After(b.expires) {
			delete(t.items, id)
			evicted++
		}
	}
	metrics.ComponentBindings.Set(float64(len(t.items)))
	return evicted
}

func (t *ComponentTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}
