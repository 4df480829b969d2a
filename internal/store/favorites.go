package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

const favoritesKey = "favorite_movie_ids"

// Favorites is the persisted set of favorite-movie identifiers.
type Favorites struct {
	mu     sync.Mutex
	store  Store
	logger *slog.Logger
	ids    map[string]struct{}
}

func NewFavorites(store Store, logger *slog.Logger) (*Favorites, error) {
	f := &Favorites{
		store:  store,
		logger: logger,
		ids:    make(map[string]struct{}),
	}

	raw, ok, err := store.Get(favoritesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	if ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, fmt.Errorf("favorites entry is corrupt: %w", err)
		}

		for _, id := range ids {
			f.ids[id] = struct{}{}
		}

		logger.Debug("loaded favorites", "count", len(f.ids))
	}

	return f, nil
}

// Toggle flips the favorite state of movieID and reports whether it is a
// favorite afterwards.
func (f *Favorites) Toggle(movieID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, exists := f.ids[movieID]
	if exists {
		delete(f.ids, movieID)
	} else {
		f.ids[movieID] = struct{}{}
	}

	if err := f.persist(); err != nil {
		return !exists, err
	}

	return !exists, nil
}

func (f *Favorites) Contains(movieID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.ids[movieID]

	return ok
}

// IDs returns the favorite identifiers in sorted order.
func (f *Favorites) IDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sortedLocked()
}

func (f *Favorites) persist() error {
	data, err := json.Marshal(f.sortedLocked())
	if err != nil {
		return err
	}

	return f.store.Set(favoritesKey, string(data))
}

func (f *Favorites) sortedLocked() []string {
	ids := make([]string, 0, len(f.ids))
	for id := range f.ids {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}
