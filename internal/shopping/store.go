// Package shopping holds the shopping list state: the item store, the
// filtered views over it and the summary numbers shown next to it.
package shopping

import (
	"math"

	"github.com/Makepad-fr/pantry/internal/model"
)

// Observer is told about every change that actually altered the list.
// It receives its own copy of the items.
type Observer interface {
	ItemsChanged(items []model.Item)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(items []model.Item)

func (f ObserverFunc) ItemsChanged(items []model.Item) { f(items) }

// Store is the canonical, ordered list of items.
// Single writer; callers serialize access.
type Store struct {
	items     []model.Item
	nextID    int64
	exhausted bool // the counter reached MaxInt64; ids are taken from the gaps
	observers []Observer
}

// New seeds a store with items following the ReplaceAll rules.
// Observers are not notified for the seed.
func New(items []model.Item, observers ...Observer) *Store {
	s := &Store{observers: observers}
	s.reset(items)
	return s
}

// Observe registers o for future changes.
func (s *Store) Observe(o Observer) {
	s.observers = append(s.observers, o)
}

// Add appends a new unchecked item built from d.
func (s *Store) Add(d model.Draft) (model.Item, error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return model.Item{}, err
	}
	it := d.Item(s.allocID())
	s.items = append(s.items, it)
	s.notify()
	return it, nil
}

// BulkAdd adds every draft in order, or none of them if any draft is invalid.
func (s *Store) BulkAdd(ds []model.Draft) ([]model.Item, error) {
	norm := make([]model.Draft, len(ds))
	for i, d := range ds {
		d = d.Normalize()
		if err := d.Validate(); err != nil {
			return nil, err
		}
		norm[i] = d
	}
	if len(norm) == 0 {
		return nil, nil
	}
	added := make([]model.Item, 0, len(norm))
	for _, d := range norm {
		it := d.Item(s.allocID())
		s.items = append(s.items, it)
		added = append(added, it)
	}
	s.notify()
	return added, nil
}

// Remove deletes the item with id. Unknown ids are ignored.
func (s *Store) Remove(id int64) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.notify()
}

// Toggle flips the checked state of the item with id. Unknown ids are ignored.
func (s *Store) Toggle(id int64) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.items[i].Checked = !s.items[i].Checked
	s.notify()
}

// ClearChecked drops every checked item and reports how many went.
func (s *Store) ClearChecked() int {
	kept := s.items[:0]
	removed := 0
	for _, it := range s.items {
		if it.Checked {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	if removed == 0 {
		return 0
	}
	// zero the tail so dropped items don't linger in the backing array
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = model.Item{}
	}
	s.items = kept
	s.notify()
	return removed
}

// ReplaceAll swaps in a whole new list, e.g. one read back from disk.
// When ids repeat, the first occurrence wins.
func (s *Store) ReplaceAll(items []model.Item) {
	s.reset(items)
	s.notify()
}

// Items returns a copy of the list in store order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

func (s *Store) Get(id int64) (model.Item, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Item{}, false
	}
	return s.items[i], true
}

func (s *Store) reset(items []model.Item) {
	seen := make(map[int64]struct{}, len(items))
	out := make([]model.Item, 0, len(items))
	var maxID int64
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	s.items = out
	if maxID == math.MaxInt64 {
		s.exhausted = true
	}
	if s.nextID <= maxID {
		s.nextID = maxID
		if maxID < math.MaxInt64 {
			s.nextID++
		}
	}
	if s.nextID < 1 {
		s.nextID = 1
	}
}

func (s *Store) allocID() int64 {
	if s.exhausted {
		return s.lowestFreeID()
	}
	id := s.nextID
	if id == math.MaxInt64 {
		s.exhausted = true
	} else {
		s.nextID++
	}
	return id
}

// lowestFreeID is the smallest positive id not in the list.
func (s *Store) lowestFreeID() int64 {
	used := make(map[int64]struct{}, len(s.items))
	for _, it := range s.items {
		used[it.ID] = struct{}{}
	}
	id := int64(1)
	for {
		if _, ok := used[id]; !ok {
			return id
		}
		id++
	}
}

func (s *Store) index(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) notify() {
	if len(s.observers) == 0 {
		return
	}
	for _, o := range s.observers {
		o.ItemsChanged(s.Items())
	}
}
