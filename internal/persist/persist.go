// Package persist keeps the shopping list in a key-value store: it seeds the
// list at startup and writes it back after every change.
package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/pantry/internal/model"
	"github.com/Makepad-fr/pantry/internal/store"
)

const (
	ItemsKey = "pantryChefShoppingList"
	UserKey  = "pantryChefUser"
)

const (
	saveTimeout = 5 * time.Second
	keepWritten = 8
)

// DefaultItems is the list a fresh install starts with.
func DefaultItems() []model.Item {
	return []model.Item{
		{ID: 1, Name: "Bell Peppers", Quantity: "3 pieces", Category: model.CategoryVegetables, Priority: model.PriorityHigh},
		{ID: 2, Name: "Chicken Breast", Quantity: "500g", Category: model.CategoryProtein, Priority: model.PriorityHigh},
		{ID: 3, Name: "Basmati Rice", Quantity: "1kg", Category: model.CategoryGrains, Checked: true, Priority: model.PriorityMedium},
		{ID: 4, Name: "Greek Yogurt", Quantity: "500g", Category: model.CategoryDairy, Priority: model.PriorityMedium},
	}
}

func EncodeItems(items []model.Item) ([]byte, error) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// DecodeItems parses a stored list. Unknown categories or priorities and
// items without a category fail the whole payload.
func DecodeItems(b []byte) ([]model.Item, error) {
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		return nil, fmt.Errorf("json unmarshal: not a list")
	}
	for i, it := range items {
		if !it.Category.Valid() {
			return nil, fmt.Errorf("item %d: %w: %q", i, model.ErrUnknownCategory, string(it.Category))
		}
	}
	return items, nil
}

// Saver writes the list to kv whenever the store reports a change.
type Saver struct {
	kv      store.Store
	log     *zap.Logger
	last    []byte
	written [][]byte // recent payloads this Saver wrote, newest last
}

func NewSaver(kv store.Store, log *zap.Logger) *Saver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Saver{kv: kv, log: log}
}

// Load reads the saved list. A missing or unusable entry gives the default
// list; a corrupted one is also removed. Never fails.
func (s *Saver) Load(ctx context.Context) []model.Item {
	items, _ := s.load(ctx)
	return items
}

// LoadOrSeed is Load, except that defaults standing in for a missing or
// corrupted list are written back straight away. Defaults used because the
// backend could not be read are not written.
func (s *Saver) LoadOrSeed(ctx context.Context) []model.Item {
	items, seed := s.load(ctx)
	if !seed {
		return items
	}
	if err := s.Save(ctx, items); err != nil {
		s.log.Warn("seed shopping list", zap.Error(err))
	}
	return items
}

func (s *Saver) load(ctx context.Context) ([]model.Item, bool) {
	b, ok, err := s.kv.Get(ctx, ItemsKey)
	if err != nil {
		s.log.Warn("load shopping list, using defaults", zap.Error(err))
		return DefaultItems(), false
	}
	if !ok {
		s.log.Debug("no saved shopping list, using defaults")
		return DefaultItems(), true
	}
	items, err := DecodeItems(b)
	if err != nil {
		s.log.Warn("discarding corrupted shopping list", zap.Error(err))
		if err := s.kv.Delete(ctx, ItemsKey); err != nil {
			s.log.Warn("delete corrupted shopping list", zap.Error(err))
		}
		return DefaultItems(), true
	}
	s.last = b
	s.log.Debug("loaded shopping list", zap.Int("items", len(items)))
	return items, false
}

// Remember marks b as already persisted, e.g. after another writer's change
// was loaded.
func (s *Saver) Remember(b []byte) { s.last = b }

// Wrote reports whether b is one of the recent payloads this Saver wrote
// itself. Change notifications carrying them are echoes, not news.
func (s *Saver) Wrote(b []byte) bool {
	for _, w := range s.written {
		if bytes.Equal(w, b) {
			return true
		}
	}
	return false
}

// ItemsChanged implements shopping.Observer.
func (s *Saver) ItemsChanged(items []model.Item) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.Save(ctx, items); err != nil {
		s.log.Error("save shopping list", zap.Error(err))
	}
}

// Save writes items unless they encode to what is already stored.
func (s *Saver) Save(ctx context.Context, items []model.Item) error {
	b, err := EncodeItems(items)
	if err != nil {
		return err
	}
	if s.last != nil && bytes.Equal(b, s.last) {
		return nil
	}
	if err := s.kv.Set(ctx, ItemsKey, b); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	s.last = b
	s.written = append(s.written, b)
	if len(s.written) > keepWritten {
		s.written = s.written[len(s.written)-keepWritten:]
	}
	s.log.Debug("saved shopping list", zap.Int("items", len(items)))
	return nil
}
