package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(time.Hour)

	created := store.Create()
	require.NotEmpty(t, created.ID)
	require.NotNil(t, created.Ledger)
	assert.Zero(t, created.Ledger.Len())

	got, found := store.Get(created.ID)
	require.True(t, found)
	assert.Same(t, created, got)

	other := store.Create()
	assert.NotEqual(t, created.ID, other.ID)
	assert.NotSame(t, created.Ledger, other.Ledger, "each session owns a fresh ledger")

	_, found = store.Get("unknown-session")
	assert.False(t, found)
}
