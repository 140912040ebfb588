// Package models defines the record kinds managed by the shell.
//
// A record is identity (id), two timestamps, a kind, and an open bag of
// extra attributes. Records built with New register themselves with the
// store they are handed; records rebuilt with FromMap do not.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"hbnb/internal/logging"
	"hbnb/internal/types"
)

// Serialized field names.
const (
	IDField        = "id"
	CreatedAtField = "created_at"
	UpdatedAtField = "updated_at"
	ClassField     = "__class__"
)

// Attributes is an insertion-ordered attribute bag. Values are scalars
// (string, bool, nil, json.Number and Go numbers), time.Time before
// serialization, or json.RawMessage for nested values read from disk.
type Attributes = types.OrderedMap[any]

// NewAttributes returns an empty bag.
func NewAttributes() *Attributes {
	return types.NewOrderedMap[any]()
}

// Store is the part of the storage engine a record talks to.
type Store interface {
	// New registers the record's serialized form under its key.
	New(r *Record)
	// Save persists the whole registry.
	Save() error
}

// Record is one entity instance.
type Record struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Kind      Kind

	// Extra holds every attribute beyond the four well-known fields.
	Extra *Attributes

	store Store
}

// now is replaced in tests that need distinct timestamps.
var now = time.Now

// New builds a fresh record and registers it with store. Construction is not
// pure: the record is visible in the registry as soon as New returns.
func New(store Store, kind Kind) *Record {
	t := now()
	r := &Record{
		ID:        uuid.NewString(),
		CreatedAt: t,
		UpdatedAt: t,
		Kind:      kind,
		Extra:     NewAttributes(),
		store:     store,
	}
	if store != nil {
		store.New(r)
	}
	logging.ModelsDebug("created %s", r.Key())
	return r
}

// FromMap rebuilds a record from its serialized attributes without
// registering it. Timestamps must match TimeFormat; a mismatch is fatal.
func FromMap(store Store, attrs *Attributes) (*Record, error) {
	t := now()
	r := &Record{
		ID:        uuid.NewString(),
		CreatedAt: t,
		UpdatedAt: t,
		Kind:      KindBaseModel,
		Extra:     NewAttributes(),
		store:     store,
	}

	var err error
	attrs.Each(func(key string, value any) bool {
		switch key {
		case CreatedAtField, UpdatedAtField:
			s, ok := value.(string)
			if !ok {
				err = fmt.Errorf("%w: %s is %T", ErrTimestampFormat, key, value)
				return false
			}
			var ts time.Time
			if ts, err = ParseTime(s); err != nil {
				return false
			}
			if key == CreatedAtField {
				r.CreatedAt = ts
			} else {
				r.UpdatedAt = ts
			}
		case IDField:
			r.ID = fmt.Sprint(value)
		case ClassField:
			name := fmt.Sprint(value)
			if !IsKnown(name) {
				err = fmt.Errorf("%w: %q", ErrUnknownKind, name)
				return false
			}
			r.Kind = Kind(name)
		default:
			r.Extra.Set(key, value)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Key returns the registry key "<Kind>.<id>".
func (r *Record) Key() string {
	return Key(r.Kind, r.ID)
}

// Key builds a registry key.
func Key(kind Kind, id string) string {
	return string(kind) + "." + id
}

// Set assigns an extra attribute. The well-known fields cannot be
// overwritten through Set.
func (r *Record) Set(name string, value any) {
	switch name {
	case IDField, CreatedAtField, UpdatedAtField, ClassField:
		return
	}
	r.Extra.Set(name, value)
}

// Get returns an extra attribute.
func (r *Record) Get(name string) (any, bool) {
	return r.Extra.Get(name)
}

// Save bumps UpdatedAt, refreshes the registry entry and persists the whole
// registry.
func (r *Record) Save() error {
	r.UpdatedAt = now()
	if r.store == nil {
		return fmt.Errorf("save %s: record has no store", r.Key())
	}
	r.store.New(r)
	if err := r.store.Save(); err != nil {
		return fmt.Errorf("save %s: %w", r.Key(), err)
	}
	return nil
}

// ToMap flattens the record into its serialized form.
func (r *Record) ToMap() *Attributes {
	out := NewAttributes()
	out.Set(IDField, r.ID)
	out.Set(CreatedAtField, FormatTime(r.CreatedAt))
	out.Set(UpdatedAtField, FormatTime(r.UpdatedAt))
	r.Extra.Each(func(k string, v any) bool {
		out.Set(k, v)
		return true
	})
	out.Set(ClassField, string(r.Kind))
	return out
}

// String renders "[<Kind>] (<id>) <attributes>".
func (r *Record) String() string {
	return Describe(r.Kind, r.ID, r.ToMap())
}

// Describe renders a registry entry the way `show` prints it.
func Describe(kind Kind, id string, attrs *Attributes) string {
	return fmt.Sprintf("[%s] (%s) %s", kind, id, Repr(attrs))
}
