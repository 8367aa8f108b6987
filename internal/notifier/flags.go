package notifier

import "sync"

// Flags is the spam-flag registry: one liveness flag per chat with an
// active notification loop. The stop handler writes it, loops read and
// remove it; this is the only state shared across goroutines.
//
// Each activation carries a generation. A newer activation for the same
// chat supersedes the previous one, so an older loop observes IsActive ==
// false at its next check and stops.
type Flags struct {
	mu sync.Mutex
	m  map[int64]flagEntry
}

type flagEntry struct {
	gen    uint64
	active bool
}

// NewFlags creates an empty registry.
func NewFlags() *Flags {
	return &Flags{m: make(map[int64]flagEntry)}
}

// Activate registers a fresh active flag for the chat and returns its
// generation. Any loop holding an older generation is superseded.
func (f *Flags) Activate(chatID int64) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	gen := f.m[chatID].gen + 1
	f.m[chatID] = flagEntry{gen: gen, active: true}
	return gen
}

// IsActive reports whether the chat's flag is still active for the given
// generation. An absent entry is inactive.
func (f *Flags) IsActive(chatID int64, gen uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.m[chatID]
	return ok && e.active && e.gen == gen
}

// Deactivate clears the chat's flag so any in-flight loop stops at its
// next check. Safe to call when no loop is active.
func (f *Flags) Deactivate(chatID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if e, ok := f.m[chatID]; ok {
		e.active = false
		f.m[chatID] = e
	}
}

// Release removes the chat's entry once a loop terminates. Idempotent, and
// a no-op when a newer activation already replaced the entry.
func (f *Flags) Release(chatID int64, gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if e, ok := f.m[chatID]; ok && e.gen == gen {
		delete(f.m, chatID)
	}
}

// Len returns the number of registered entries.
func (f *Flags) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.m)
}
