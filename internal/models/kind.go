package models

import (
	"errors"
	"sort"
)

// ErrUnknownKind is returned when a record names a kind outside the closed set.
var ErrUnknownKind = errors.New("unknown record kind")

// Kind is the declared type name of a record. It prefixes the registry key
// and is serialized under ClassField.
type Kind string

const (
	KindBaseModel Kind = "BaseModel"
	KindUser      Kind = "User"
	KindState     Kind = "State"
	KindCity      Kind = "City"
	KindPlace     Kind = "Place"
	KindAmenity   Kind = "Amenity"
	KindReview    Kind = "Review"
)

// Factory builds a fresh record of one kind and registers it with store.
type Factory func(store Store) *Record

func NewBaseModel(store Store) *Record { return New(store, KindBaseModel) }
func NewUser(store Store) *Record      { return New(store, KindUser) }
func NewState(store Store) *Record     { return New(store, KindState) }
func NewCity(store Store) *Record      { return New(store, KindCity) }
func NewPlace(store Store) *Record     { return New(store, KindPlace) }
func NewAmenity(store Store) *Record   { return New(store, KindAmenity) }
func NewReview(store Store) *Record    { return New(store, KindReview) }

// factories is the closed set of kinds. Nothing registers at runtime.
var factories = map[Kind]Factory{
	KindBaseModel: NewBaseModel,
	KindUser:      NewUser,
	KindState:     NewState,
	KindCity:      NewCity,
	KindPlace:     NewPlace,
	KindAmenity:   NewAmenity,
	KindReview:    NewReview,
}

// Lookup resolves a kind name to its constructor.
func Lookup(name string) (Factory, bool) {
	f, ok := factories[Kind(name)]
	return f, ok
}

// IsKnown reports whether name is one of the seven kinds.
func IsKnown(name string) bool {
	_, ok := factories[Kind(name)]
	return ok
}

// Kinds returns every known kind sorted by name.
func Kinds() []Kind {
	out := make([]Kind, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
