package memory

import (
	"sort"
	"sync"

	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/ports"
)

// AttributeStore implements ports.AttributeStore with an in-memory map.
//
// Thread-safe: All operations protected by sync.RWMutex. Watchers are called
// without the lock held, on the goroutine that made the change.
type AttributeStore struct {
	mu       sync.RWMutex
	values   map[domain.Attribute]string
	watchers watcherSet
}

// NewAttributeStore creates a store preloaded with the given attributes.
func NewAttributeStore(initial map[domain.Attribute]string) *AttributeStore {
	values := make(map[domain.Attribute]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &AttributeStore{values: values}
}

// Get returns the value and whether the attribute is present.
func (s *AttributeStore) Get(name domain.Attribute) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[name]
	return v, ok
}

// Set writes an attribute and notifies watchers when the value changed.
func (s *AttributeStore) Set(name domain.Attribute, value string) error {
	s.mu.Lock()
	old, had := s.values[name]
	s.values[name] = value
	s.mu.Unlock()

	if !had || old != value {
		s.watchers.notify(name)
	}
	return nil
}

// Remove deletes an attribute and notifies watchers if it was present.
func (s *AttributeStore) Remove(name domain.Attribute) {
	s.mu.Lock()
	_, had := s.values[name]
	delete(s.values, name)
	s.mu.Unlock()

	if had {
		s.watchers.notify(name)
	}
}

// Watch registers fn for attribute changes.
func (s *AttributeStore) Watch(fn func(name domain.Attribute)) (cancel func()) {
	return s.watchers.add(fn)
}

// watcherSet is a registry of change callbacks shared by the attribute stores.
type watcherSet struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func(domain.Attribute)
}

func (w *watcherSet) add(fn func(domain.Attribute)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fns == nil {
		w.fns = make(map[int]func(domain.Attribute))
	}
	w.nextID++
	id := w.nextID
	w.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.fns, id)
			w.mu.Unlock()
		})
	}
}

func (w *watcherSet) notify(name domain.Attribute) {
	w.mu.Lock()
	ids := make([]int, 0, len(w.fns))
	for id := range w.fns {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(domain.Attribute), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, w.fns[id])
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(name)
	}
}

// Verify interface implementation
var _ ports.AttributeStore = (*AttributeStore)(nil)
