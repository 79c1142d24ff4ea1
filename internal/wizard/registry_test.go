package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateGet(t *testing.T) {
	r := NewRegistry(time.Hour)

	token, session := r.Create()
	require.NotEmpty(t, token)
	require.NotNil(t, session)

	got, ok := r.Get(token)
	require.True(t, ok)
	assert.Same(t, session, got)

	_, ok = r.Get("unknown-token")
	assert.False(t, ok)
}

func TestRegistryDelete(t *testing.T) {
	r := NewRegistry(time.Hour)
	token, _ := r.Create()

	r.Delete(token)
	_, ok := r.Get(token)
	assert.False(t, ok)
}

func TestRegistryExpiry(t *testing.T) {
	r := NewRegistry(30 * time.Minute)

	current := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return current }

	token, _ := r.Create()
	require.Equal(t, 1, r.Len())

	// Touch keeps the session alive.
	current = current.Add(20 * time.Minute)
	_, ok := r.Get(token)
	require.True(t, ok)

	current = current.Add(29 * time.Minute)
	_, ok = r.Get(token)
	assert.True(t, ok)

	current = current.Add(31 * time.Minute)
	_, ok = r.Get(token)
	assert.False(t, ok)
	assert.Zero(t, r.Len())
}
