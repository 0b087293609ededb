// Package store persists starred listings and search history as JSON
// files under the user's data directory.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devskale/willhaben-agent/internal/wh"
)

const historyLimit = 100

// StarredItem is a listing frozen at the moment it was starred.
type StarredItem struct {
	wh.Listing
	StarredAt time.Time `json:"starredAt"`
}

// HistoryItem is one remembered search.
type HistoryItem struct {
	Query        string    `json:"query"`
	CategoryID   string    `json:"categoryId,omitempty"`
	CategoryName string    `json:"categoryName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DefaultDir returns the default data directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".willhaben"
	}
	return filepath.Join(home, ".local", "share", "willhaben")
}

// Stars is the starred-listings store. Methods are synchronous; every
// mutation writes through to disk.
type Stars struct {
	path  string
	items []StarredItem
}

// OpenStars loads the starred store from dir, creating it on demand.
func OpenStars(dir string) (*Stars, error) {
	s := &Stars{path: filepath.Join(dir, "starred.json")}
	if err := loadJSON(s.path, &s.items); err != nil {
		return nil, fmt.Errorf("load starred items: %w", err)
	}
	return s, nil
}

// Toggle stars item if it is unstarred and vice versa, returning the
// new starred state.
func (s *Stars) Toggle(item wh.Listing) (bool, error) {
	for i, existing := range s.items {
		if existing.ID == item.ID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return false, saveJSON(s.path, s.items)
		}
	}
	s.items = append([]StarredItem{{Listing: item, StarredAt: time.Now()}}, s.items...)
	return true, saveJSON(s.path, s.items)
}

// IsStarred reports whether the listing id is starred.
func (s *Stars) IsStarred(id string) bool {
	for _, item := range s.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// List returns the starred listings, newest first.
func (s *Stars) List() []StarredItem {
	out := make([]StarredItem, len(s.items))
	copy(out, s.items)
	return out
}

// IDs returns the starred listing ids as a set for quick lookups.
func (s *Stars) IDs() map[string]bool {
	ids := make(map[string]bool, len(s.items))
	for _, item := range s.items {
		ids[item.ID] = true
	}
	return ids
}

// History is the search-history store. It keeps at most the 100
// most-recent distinct queries; re-adding a query refreshes its
// recency instead of duplicating it.
type History struct {
	path  string
	items []HistoryItem
}

// OpenHistory loads the history store from dir.
func OpenHistory(dir string) (*History, error) {
	h := &History{path: filepath.Join(dir, "history.json")}
	if err := loadJSON(h.path, &h.items); err != nil {
		return nil, fmt.Errorf("load search history: %w", err)
	}
	return h, nil
}

// Add records a search. Queries shorter than 2 trimmed runes are
// ignored.
func (h *History) Add(query, categoryID, categoryName string) error {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil
	}

	for i, existing := range h.items {
		if existing.Query == query {
			h.items = append(h.items[:i], h.items[i+1:]...)
			break
		}
	}
	h.items = append([]HistoryItem{{
		Query:        query,
		CategoryID:   categoryID,
		CategoryName: categoryName,
		CreatedAt:    time.Now(),
	}}, h.items...)

	if len(h.items) > historyLimit {
		h.items = h.items[:historyLimit]
	}
	return saveJSON(h.path, h.items)
}

// List returns remembered searches, newest first.
func (h *History) List() []HistoryItem {
	out := make([]HistoryItem, len(h.items))
	copy(out, h.items)
	return out
}

func loadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func saveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
