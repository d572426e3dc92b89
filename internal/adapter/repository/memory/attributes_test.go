package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
)

func TestAttributeStore_GetSet(t *testing.T) {
	store := NewAttributeStore(map[domain.Attribute]string{domain.AttrStartIndex: "2"})

	v, ok := store.Get(domain.AttrStartIndex)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = store.Get(domain.AttrIndex)
	assert.False(t, ok, "unset attribute is absent")

	require.NoError(t, store.Set(domain.AttrIndex, "3"))
	v, ok = store.Get(domain.AttrIndex)
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestAttributeStore_InitialMapIsCopied(t *testing.T) {
	initial := map[domain.Attribute]string{domain.AttrShowDots: ""}
	store := NewAttributeStore(initial)

	initial[domain.AttrShowDots] = "changed"

	v, _ := store.Get(domain.AttrShowDots)
	assert.Equal(t, "", v)
}

func TestAttributeStore_WatchNotifiesOnlyOnChange(t *testing.T) {
	store := NewAttributeStore(nil)

	var seen []domain.Attribute
	store.Watch(func(name domain.Attribute) { seen = append(seen, name) })

	require.NoError(t, store.Set(domain.AttrIndex, "1"))
	require.NoError(t, store.Set(domain.AttrIndex, "1"))
	require.NoError(t, store.Set(domain.AttrShowArrows, ""))
	require.NoError(t, store.Set(domain.AttrIndex, "2"))

	assert.Equal(t, []domain.Attribute{domain.AttrIndex, domain.AttrShowArrows, domain.AttrIndex}, seen)
}

func TestAttributeStore_Remove(t *testing.T) {
	store := NewAttributeStore(map[domain.Attribute]string{domain.AttrShowDots: ""})

	calls := 0
	store.Watch(func(domain.Attribute) { calls++ })

	store.Remove(domain.AttrShowDots)
	store.Remove(domain.AttrShowDots)

	_, ok := store.Get(domain.AttrShowDots)
	assert.False(t, ok)
	assert.Equal(t, 1, calls, "removing an absent attribute does not notify")
}

func TestAttributeStore_CancelWatch(t *testing.T) {
	store := NewAttributeStore(nil)

	calls := 0
	cancel := store.Watch(func(domain.Attribute) { calls++ })

	require.NoError(t, store.Set(domain.AttrIndex, "1"))
	cancel()
	cancel()
	require.NoError(t, store.Set(domain.AttrIndex, "2"))

	assert.Equal(t, 1, calls)
}

func TestAttributeStore_WatchersRunInRegistrationOrder(t *testing.T) {
	store := NewAttributeStore(nil)

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		store.Watch(func(domain.Attribute) { order = append(order, i) })
	}

	require.NoError(t, store.Set(domain.AttrIndex, "1"))
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestAttributeStore_WatcherMaySetFromCallback(t *testing.T) {
	store := NewAttributeStore(nil)

	store.Watch(func(name domain.Attribute) {
		if name == domain.AttrStartIndex {
			_ = store.Set(domain.AttrIndex, "0")
		}
	})

	require.NoError(t, store.Set(domain.AttrStartIndex, "4"))

	v, ok := store.Get(domain.AttrIndex)
	assert.True(t, ok)
	assert.Equal(t, "0", v)
}
