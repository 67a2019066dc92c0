// Package favorites keeps the user's favorite titles as a persisted set of IMDb IDs.
package favorites

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/lepinkainen/marquee/internal/storage"
)

// StorageKey is the key holding the JSON array of favorite IDs.
const StorageKey = "favorites"

// Favorites is a set of IDs mirrored to a storage.Store on every change.
type Favorites struct {
	store storage.Store
	mu    sync.Mutex
	ids   map[string]struct{}
}

// Load reads the persisted set. Missing, unreadable or corrupt data yields an
// empty set; it is logged and never returned as an error.
func Load(store storage.Store) *Favorites {
	f := &Favorites{
		store: store,
		ids:   make(map[string]struct{}),
	}

	raw, ok, err := store.Get(StorageKey)
	if err != nil {
		slog.Warn("Failed to read favorites, starting empty", "error", err)
		return f
	}
	if !ok {
		return f
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		slog.Warn("Stored favorites are corrupt, starting empty", "error", err)
		return f
	}

	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			f.ids[id] = struct{}{}
		}
	}

	slog.Debug("Loaded favorites", "count", len(f.ids))
	return f
}

// IsFavorite reports whether id is in the set.
func (f *Favorites) IsFavorite(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.ids[id]
	return ok
}

// Toggle removes id if present and adds it otherwise, then persists the full
// set before returning. If persisting fails the change is undone and the
// error returned. The returned bool is the membership after the call.
func (f *Favorites) Toggle(id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, fmt.Errorf("cannot toggle an empty id")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	_, present := f.ids[id]
	if present {
		delete(f.ids, id)
	} else {
		f.ids[id] = struct{}{}
	}

	if err := f.persistLocked(); err != nil {
		if present {
			f.ids[id] = struct{}{}
		} else {
			delete(f.ids, id)
		}
		return present, fmt.Errorf("failed to persist favorites: %w", err)
	}

	slog.Debug("Toggled favorite", "id", id, "favorite", !present)
	return !present, nil
}

// List returns the IDs in sorted order.
func (f *Favorites) List() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sortedLocked()
}

// Len returns the number of favorites.
func (f *Favorites) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.ids)
}

func (f *Favorites) sortedLocked() []string {
	ids := lo.Keys(f.ids)
	slices.Sort(ids)
	return ids
}

func (f *Favorites) persistLocked() error {
	data, err := json.Marshal(f.sortedLocked())
	if err != nil {
		return err
	}
	return f.store.Set(StorageKey, string(data))
}
