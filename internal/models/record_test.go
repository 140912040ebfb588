package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	entries map[string]*Attributes
	saves   int
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]*Attributes)}
}

func (s *fakeStore) New(r *Record) { s.entries[r.Key()] = r.ToMap() }

func (s *fakeStore) Save() error {
	s.saves++
	return s.saveErr
}

func fixedClock(t *testing.T, times ...time.Time) {
	t.Helper()
	orig := now
	i := 0
	now = func() time.Time {
		ts := times[i]
		if i < len(times)-1 {
			i++
		}
		return ts
	}
	t.Cleanup(func() { now = orig })
}

func TestNew_RegistersWithStore(t *testing.T) {
	store := newFakeStore()
	r := New(store, KindUser)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
	assert.Equal(t, "User."+r.ID, r.Key())

	attrs, ok := store.entries[r.Key()]
	require.True(t, ok, "record should be registered on construction")
	v, _ := attrs.Get(ClassField)
	assert.Equal(t, "User", v)
	assert.Equal(t, 0, store.saves, "construction registers but does not persist")
}

func TestNew_UniqueIDs(t *testing.T) {
	store := newFakeStore()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		r := New(store, KindCity)
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
	assert.Len(t, store.entries, 100)
}

func TestFromMap_DoesNotRegister(t *testing.T) {
	store := newFakeStore()
	attrs := NewAttributes()
	attrs.Set("id", "test_id")
	attrs.Set("created_at", "2022-01-01T00:00:00.000000")
	attrs.Set("updated_at", "2022-01-02T00:00:00.000000")
	attrs.Set("custom_attribute", "custom_value")
	attrs.Set("__class__", "Place")

	r, err := FromMap(store, attrs)
	require.NoError(t, err)

	assert.Empty(t, store.entries)
	assert.Equal(t, "test_id", r.ID)
	assert.Equal(t, KindPlace, r.Kind)
	assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.Local), r.CreatedAt)
	assert.Equal(t, time.Date(2022, 1, 2, 0, 0, 0, 0, time.Local), r.UpdatedAt)
	v, ok := r.Get("custom_attribute")
	require.True(t, ok)
	assert.Equal(t, "custom_value", v)
}

func TestFromMap_BadTimestampIsFatal(t *testing.T) {
	cases := map[string]any{
		"no fraction":  "2022-01-01T00:00:00",
		"date only":    "2022-01-01",
		"zone suffix":  "2022-01-01T00:00:00.000000Z",
		"bad month":    "2022-13-01T00:00:00.000000",
		"not a string": 12,
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			attrs := NewAttributes()
			attrs.Set("created_at", value)
			_, err := FromMap(nil, attrs)
			assert.True(t, errors.Is(err, ErrTimestampFormat), "got %v", err)
		})
	}
}

func TestFromMap_ShortFractionAccepted(t *testing.T) {
	attrs := NewAttributes()
	attrs.Set("updated_at", "2022-01-01T10:20:30.5")
	r, err := FromMap(nil, attrs)
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, time.Duration(r.UpdatedAt.Nanosecond()))
}

func TestFromMap_UnknownKind(t *testing.T) {
	attrs := NewAttributes()
	attrs.Set("__class__", "Spaceship")
	_, err := FromMap(nil, attrs)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestSave_BumpsUpdatedAtAndPersists(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	t1 := t0.Add(time.Second)
	fixedClock(t, t0, t1)

	store := newFakeStore()
	r := New(store, KindUser)
	require.Equal(t, t0, r.UpdatedAt)

	require.NoError(t, r.Save())
	assert.Equal(t, t1, r.UpdatedAt)
	assert.Equal(t, t0, r.CreatedAt)
	assert.Equal(t, 1, store.saves)

	v, _ := store.entries[r.Key()].Get(UpdatedAtField)
	assert.Equal(t, FormatTime(t1), v, "registry entry should carry the new timestamp")
}

func TestSave_PropagatesStoreError(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	r := New(store, KindState)
	assert.ErrorContains(t, r.Save(), "disk full")
}

func TestToMap_Layout(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 30, 45, 123456000, time.Local)
	fixedClock(t, t0)

	r := New(nil, KindAmenity)
	r.Set("name", "Wifi")
	r.Set("id", "ignored")

	m := r.ToMap()
	assert.Equal(t, []string{"id", "created_at", "updated_at", "name", "__class__"}, m.Keys())
	v, _ := m.Get("created_at")
	assert.Equal(t, "2024-05-01T12:30:45.123456", v)
	v, _ = m.Get("id")
	assert.Equal(t, r.ID, v)
}

func TestToMap_RoundTripsThroughFromMap(t *testing.T) {
	r := New(nil, KindReview)
	r.Set("text", "great")

	back, err := FromMap(nil, r.ToMap())
	require.NoError(t, err)
	assert.Equal(t, r.ID, back.ID)
	assert.Equal(t, r.Kind, back.Kind)
	assert.Equal(t, Repr(r.ToMap()), Repr(back.ToMap()))
}

func TestString(t *testing.T) {
	r := New(nil, KindUser)
	s := r.String()
	assert.Contains(t, s, "[User] ("+r.ID+")")
	assert.Contains(t, s, "'__class__': 'User'")
}
