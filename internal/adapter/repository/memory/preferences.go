package memory

import (
	"sync"

	"fyne.io/fyne/v2"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/ports"
)

// absentValue marks a key that has never been written; attribute values are
// user text and never contain NUL.
const absentValue = "\x00"

// PreferencesAttributeStore implements ports.AttributeStore on top of Fyne
// preferences, so attributes such as the current index survive restarts.
//
// Fyne only reports that "something" changed; the store keeps a snapshot of
// the observed attributes and diffs it to tell watchers which one changed.
// Writes made through Set update the snapshot first and therefore never echo
// back through the preferences change listener.
//
// Thread-safe: All operations protected by sync.RWMutex.
type PreferencesAttributeStore struct {
	prefs  fyne.Preferences
	prefix string

	mu       sync.RWMutex
	snapshot map[domain.Attribute]string
	watchers watcherSet
}

// NewPreferencesAttributeStore creates a store whose keys live under
// "carousel.<name>." in prefs. The preferences parameter should be obtained
// from fyne.CurrentApp().Preferences().
func NewPreferencesAttributeStore(prefs fyne.Preferences, name string) *PreferencesAttributeStore {
	s := &PreferencesAttributeStore{
		prefs:    prefs,
		prefix:   "carousel." + name + ".",
		snapshot: make(map[domain.Attribute]string),
	}
	for _, attr := range domain.ObservedAttributes {
		s.snapshot[attr] = s.read(attr)
	}

	prefs.AddChangeListener(s.onPreferencesChanged)
	return s
}

func (s *PreferencesAttributeStore) key(name domain.Attribute) string {
	return s.prefix + string(name)
}

func (s *PreferencesAttributeStore) read(name domain.Attribute) string {
	return s.prefs.StringWithFallback(s.key(name), absentValue)
}

// Get returns the stored value and whether the attribute is present.
func (s *PreferencesAttributeStore) Get(name domain.Attribute) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.read(name)
	if v == absentValue {
		return "", false
	}
	return v, true
}

// Set persists an attribute and notifies watchers when the value changed.
func (s *PreferencesAttributeStore) Set(name domain.Attribute, value string) error {
	if value == absentValue {
		return domain.NewRepositoryError("set", s.key(name), "value is reserved", nil)
	}

	s.mu.Lock()
	old, known := s.snapshot[name]
	if !known {
		old = s.read(name)
	}
	s.snapshot[name] = value
	s.mu.Unlock()

	// Fyne may run change listeners before SetString returns.
	s.prefs.SetString(s.key(name), value)

	if old != value {
		s.watchers.notify(name)
	}
	return nil
}

// Remove deletes an attribute and notifies watchers if it was present.
func (s *PreferencesAttributeStore) Remove(name domain.Attribute) {
	s.mu.Lock()
	old := s.read(name)
	s.snapshot[name] = absentValue
	s.mu.Unlock()

	s.prefs.RemoveValue(s.key(name))

	if old != absentValue {
		s.watchers.notify(name)
	}
}

// Watch registers fn for attribute changes, including changes made to the
// underlying preferences by other code.
func (s *PreferencesAttributeStore) Watch(fn func(name domain.Attribute)) (cancel func()) {
	return s.watchers.add(fn)
}

func (s *PreferencesAttributeStore) onPreferencesChanged() {
	var changed []domain.Attribute

	s.mu.Lock()
	for _, attr := range domain.ObservedAttributes {
		now := s.read(attr)
		if s.snapshot[attr] != now {
			s.snapshot[attr] = now
			changed = append(changed, attr)
		}
	}
	s.mu.Unlock()

	for _, attr := range changed {
		s.watchers.notify(attr)
	}
}

// Verify interface implementation
var _ ports.AttributeStore = (*PreferencesAttributeStore)(nil)
