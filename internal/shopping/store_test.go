package shopping

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/pantry/internal/model"
)

type recorder struct {
	calls [][]model.Item
}

func (r *recorder) ItemsChanged(items []model.Item) { r.calls = append(r.calls, items) }

func sample() []model.Item {
	return []model.Item{
		{ID: 1, Name: "Bell Peppers", Quantity: "3 pieces", Category: model.CategoryVegetables, Priority: model.PriorityHigh},
		{ID: 2, Name: "Chicken Breast", Quantity: "500g", Category: model.CategoryProtein, Priority: model.PriorityHigh},
		{ID: 3, Name: "Basmati Rice", Quantity: "1kg", Category: model.CategoryGrains, Checked: true, Priority: model.PriorityMedium},
	}
}

func TestStore_Add(t *testing.T) {
	rec := &recorder{}
	s := New(nil, rec)

	it, err := s.Add(model.Draft{Name: "  Eggs ", Quantity: "1 dozen", Category: model.CategoryDairy, Priority: model.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, "Eggs", it.Name)
	assert.False(t, it.Checked)
	assert.NotZero(t, it.ID)

	_, err = s.Add(model.Draft{Name: "", Quantity: "1", Category: model.CategoryOther})
	assert.ErrorIs(t, err, model.ErrEmptyName)

	assert.Equal(t, 1, s.Len())
	assert.Len(t, rec.calls, 1, "rejected add must not notify")
}

func TestStore_AddAllowsDuplicateNames(t *testing.T) {
	s := New(nil)
	a, err := s.Add(model.Draft{Name: "Milk", Category: model.CategoryDairy})
	require.NoError(t, err)
	b, err := s.Add(model.Draft{Name: "Milk", Category: model.CategoryDairy})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, s.Len())
}

func TestStore_IDsUnique(t *testing.T) {
	s := New(sample())
	seen := map[int64]bool{}
	for _, it := range s.Items() {
		seen[it.ID] = true
	}
	for i := 0; i < 20; i++ {
		it, err := s.Add(model.Draft{Name: "x", Category: model.CategoryOther})
		require.NoError(t, err)
		require.False(t, seen[it.ID], "id %d reused", it.ID)
		seen[it.ID] = true
	}
	added, err := s.BulkAdd([]model.Draft{
		{Name: "a", Category: model.CategoryOther},
		{Name: "b", Category: model.CategoryOther},
	})
	require.NoError(t, err)
	for _, it := range added {
		require.False(t, seen[it.ID], "id %d reused", it.ID)
		seen[it.ID] = true
	}

	// ids stay fresh after a rehydrate with smaller ids
	s.ReplaceAll([]model.Item{{ID: 1, Name: "a", Category: model.CategoryOther}})
	it, err := s.Add(model.Draft{Name: "y", Category: model.CategoryOther})
	require.NoError(t, err)
	assert.NotEqual(t, int64(1), it.ID)
}

func TestStore_IDsUniqueAtMaxInt64(t *testing.T) {
	s := New([]model.Item{
		{ID: 1, Name: "a", Category: model.CategoryOther},
		{ID: math.MaxInt64, Name: "b", Category: model.CategoryOther},
	})
	it, err := s.Add(model.Draft{Name: "c", Category: model.CategoryOther})
	require.NoError(t, err)
	assert.Equal(t, int64(2), it.ID)

	added, err := s.BulkAdd([]model.Draft{
		{Name: "d", Category: model.CategoryOther},
		{Name: "e", Category: model.CategoryOther},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, int64(3), added[0].ID)
	assert.Equal(t, int64(4), added[1].ID)

	seen := map[int64]bool{}
	for _, it := range s.Items() {
		require.False(t, seen[it.ID], "duplicate id %d", it.ID)
		seen[it.ID] = true
	}
}

func TestStore_LastCounterIDIsHandedOutOnce(t *testing.T) {
	s := New([]model.Item{{ID: math.MaxInt64 - 1, Name: "a", Category: model.CategoryOther}})
	it, err := s.Add(model.Draft{Name: "b", Category: model.CategoryOther})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), it.ID)

	it, err = s.Add(model.Draft{Name: "c", Category: model.CategoryOther})
	require.NoError(t, err)
	assert.Equal(t, int64(1), it.ID)
}

func TestStore_Observe(t *testing.T) {
	s := New(sample())
	rec := &recorder{}
	s.Observe(rec)

	s.Toggle(1)
	s.Toggle(42)
	require.Len(t, rec.calls, 1)
	assert.True(t, rec.calls[0][0].Checked)
}

func TestStore_BulkAdd(t *testing.T) {
	t.Run("keeps order", func(t *testing.T) {
		s := New(sample())
		added, err := s.BulkAdd([]model.Draft{
			{Name: "Tomatoes", Quantity: "4 pieces", Category: model.CategoryVegetables},
			{Name: "Onions", Quantity: "2 pieces", Category: model.CategoryVegetables},
		})
		require.NoError(t, err)
		require.Len(t, added, 2)
		items := s.Items()
		require.Len(t, items, 5)
		assert.Equal(t, "Tomatoes", items[3].Name)
		assert.Equal(t, "Onions", items[4].Name)
	})

	t.Run("all or nothing", func(t *testing.T) {
		rec := &recorder{}
		s := New(sample(), rec)
		before := s.Items()
		_, err := s.BulkAdd([]model.Draft{
			{Name: "Tomatoes", Category: model.CategoryVegetables},
			{Name: " ", Category: model.CategoryVegetables},
		})
		assert.ErrorIs(t, err, model.ErrEmptyName)
		assert.Empty(t, cmp.Diff(before, s.Items()))
		assert.Empty(t, rec.calls)
	})
}

func TestStore_RemoveIdempotent(t *testing.T) {
	s := New(sample())
	s.Remove(2)
	once := s.Items()
	s.Remove(2)
	assert.Empty(t, cmp.Diff(once, s.Items()))
	assert.Len(t, once, 2)
}

func TestStore_UnknownIDsAreNoOps(t *testing.T) {
	rec := &recorder{}
	s := New(sample(), rec)
	before := s.Items()

	s.Toggle(999)
	s.Remove(999)

	assert.Empty(t, cmp.Diff(before, s.Items()))
	assert.Empty(t, rec.calls)
}

func TestStore_Toggle(t *testing.T) {
	s := New(sample())
	s.Toggle(1)
	it, ok := s.Get(1)
	require.True(t, ok)
	assert.True(t, it.Checked)

	s.Toggle(1)
	it, _ = s.Get(1)
	assert.False(t, it.Checked)
}

func TestStore_ClearChecked(t *testing.T) {
	rec := &recorder{}
	s := New(sample(), rec)
	assert.Equal(t, 1, s.ClearChecked())
	assert.Equal(t, 2, s.Len())
	for _, it := range s.Items() {
		assert.False(t, it.Checked)
	}
	assert.Len(t, rec.calls, 1)

	assert.Equal(t, 0, s.ClearChecked())
	assert.Len(t, rec.calls, 1)
}

func TestStore_ReplaceAllDropsDuplicateIDs(t *testing.T) {
	s := New(nil)
	s.ReplaceAll([]model.Item{
		{ID: 5, Name: "first", Category: model.CategoryOther},
		{ID: 6, Name: "other", Category: model.CategoryOther},
		{ID: 5, Name: "second", Category: model.CategoryOther},
	})
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Name)
	assert.Equal(t, "other", items[1].Name)
}

func TestStore_ItemsIsACopy(t *testing.T) {
	s := New(sample())
	items := s.Items()
	items[0].Name = "changed"
	it, _ := s.Get(1)
	assert.Equal(t, "Bell Peppers", it.Name)
}

func TestStore_ObserverGetsSnapshot(t *testing.T) {
	var got []model.Item
	s := New(nil, ObserverFunc(func(items []model.Item) { got = items }))
	_, err := s.Add(model.Draft{Name: "Eggs", Category: model.CategoryDairy})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Eggs", got[0].Name)
}
