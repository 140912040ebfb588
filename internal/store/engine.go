// Package store owns the record registry and its persisted JSON document.
//
// The registry maps "<Kind>.<id>" keys to serialized attribute bags. It is
// the single source of truth: the shell reads and mutates it directly and
// calls Save after every mutation. Save rewrites the whole document through
// a Backend in one attempt; Reload replaces the registry wholesale.
//
// Usage Example:
//
//	backend := store.NewFileBackend("file.json")
//	engine := store.New(backend)
//	if err := engine.Reload(); err != nil {
//	  return err // corrupt document, never "file absent"
//	}
//	rec := models.NewUser(engine) // registered on construction
//	_ = engine.Save()
package store

import (
	"errors"
	"fmt"
	"strings"

	"hbnb/internal/logging"
	"hbnb/internal/models"
	"hbnb/internal/types"
)

var (
	// ErrNotExist is returned by Backend.Read when no document has been written yet.
	ErrNotExist = errors.New("store: document does not exist")
	// ErrCorrupt is returned when a present document is not a JSON object of objects.
	ErrCorrupt = errors.New("store: corrupt document")
	// ErrUnsupportedType is returned when an attribute value has no JSON form.
	ErrUnsupportedType = errors.New("store: unsupported type")
)

// Objects is the registry: key to serialized attributes, in insertion order.
type Objects = types.OrderedMap[*models.Attributes]

// Engine is the storage engine. Construct one per shell with New.
type Engine struct {
	backend Backend
	objects *Objects
}

var _ models.Store = (*Engine)(nil)

// New returns an engine with an empty registry backed by backend.
func New(backend Backend) *Engine {
	return &Engine{
		backend: backend,
		objects: types.NewOrderedMap[*models.Attributes](),
	}
}

// All returns the live registry. Callers mutate it only through Engine
// methods or by editing an entry's attributes in place.
func (e *Engine) All() *Objects {
	return e.objects
}

// New registers r's serialized form under r.Key(), overwriting any entry
// with the same key.
func (e *Engine) New(r *models.Record) {
	key := r.Key()
	e.objects.Set(key, r.ToMap())
	logging.StorageDebug("registered %s", key)
}

// Get returns the attributes stored under key.
func (e *Engine) Get(key string) (*models.Attributes, bool) {
	return e.objects.Get(key)
}

// Delete removes key and reports whether it was present. Keys are never
// reused, so nothing is left behind.
func (e *Engine) Delete(key string) bool {
	ok := e.objects.Delete(key)
	if ok {
		logging.StorageDebug("deleted %s", key)
	}
	return ok
}

// Count returns the number of records of kind, or of every kind when kind
// is empty.
func (e *Engine) Count(kind models.Kind) int {
	if kind == "" {
		return e.objects.Len()
	}
	prefix := string(kind) + "."
	n := 0
	e.objects.Each(func(key string, _ *models.Attributes) bool {
		if strings.HasPrefix(key, prefix) {
			n++
		}
		return true
	})
	return n
}

// Record rebuilds a live record from the entry under key. The record is not
// re-registered.
func (e *Engine) Record(key string) (*models.Record, error) {
	attrs, ok := e.objects.Get(key)
	if !ok {
		return nil, fmt.Errorf("record %s: %w", key, ErrNotExist)
	}
	r, err := models.FromMap(e, attrs)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", key, err)
	}
	return r, nil
}

// Save serializes the whole registry and writes it through the backend.
func (e *Engine) Save() error {
	data, err := Encode(e.objects)
	if err != nil {
		logging.StorageError("encode failed: %v", err)
		return err
	}
	if err := e.backend.Write(data); err != nil {
		logging.StorageError("write to %s failed: %v", e.backend.Name(), err)
		return fmt.Errorf("persist to %s: %w", e.backend.Name(), err)
	}
	logging.StorageDebug("persisted %d records (%d bytes) to %s", e.objects.Len(), len(data), e.backend.Name())
	return nil
}

// Reload replaces the registry with the backend's document. An absent
// document leaves the registry empty and is not an error.
func (e *Engine) Reload() error {
	data, err := e.backend.Read()
	if errors.Is(err, ErrNotExist) {
		logging.Storage("no document in %s, starting empty", e.backend.Name())
		e.objects = types.NewOrderedMap[*models.Attributes]()
		return nil
	}
	if err != nil {
		return fmt.Errorf("reload from %s: %w", e.backend.Name(), err)
	}

	objects, err := Decode(data)
	if err != nil {
		return fmt.Errorf("reload from %s: %w", e.backend.Name(), err)
	}
	e.objects = objects
	logging.Storage("reloaded %d records from %s", objects.Len(), e.backend.Name())
	return nil
}

// Backend returns the backend the engine persists through.
func (e *Engine) Backend() Backend {
	return e.backend
}

// Close releases the backend.
func (e *Engine) Close() error {
	return e.backend.Close()
}
