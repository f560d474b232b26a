package registry

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryNote(t *testing.T) {
	ownerID := uuid.New()
	itemID := uuid.New()

	t.Run("creates note", func(t *testing.T) {
		note, err := NewRegistryNote(ownerID, itemID, "Grandma wants to buy this one")
		require.NoError(t, err)
		assert.Equal(t, ownerID, note.OwnerID)
		assert.Equal(t, itemID, note.ItemID)
		assert.Equal(t, "Grandma wants to buy this one", note.Note)
	})

	t.Run("empty text is a valid note", func(t *testing.T) {
		note, err := NewRegistryNote(ownerID, itemID, "")
		require.NoError(t, err)
		assert.Empty(t, note.Note)
	})

	t.Run("rejects nil owner or item", func(t *testing.T) {
		_, err := NewRegistryNote(uuid.Nil, itemID, "text")
		assert.Error(t, err)
		_, err = NewRegistryNote(ownerID, uuid.Nil, "text")
		assert.Error(t, err)
	})

	t.Run("rejects oversized text", func(t *testing.T) {
		_, err := NewRegistryNote(ownerID, itemID, strings.Repeat("a", 2001))
		assert.Error(t, err)
	})
}

func TestRegistryNoteSetText(t *testing.T) {
	note, err := NewRegistryNote(uuid.New(), uuid.New(), "first")
	require.NoError(t, err)

	before := note.UpdatedAt
	require.NoError(t, note.SetText("second"))
	assert.Equal(t, "second", note.Note)
	assert.True(t, !note.UpdatedAt.Before(before))

	require.NoError(t, note.SetText(""))
	assert.Empty(t, note.Note)
}

func TestNewLinkedAccountConnection(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates connection for linkable service", func(t *testing.T) {
		conn, err := NewLinkedAccountConnection(ownerID, SourceBabylist, "tok-123", "jess")
		require.NoError(t, err)
		assert.Equal(t, SourceBabylist, conn.Service)
		assert.Equal(t, "tok-123", conn.AccessToken)
		assert.False(t, conn.ConnectedAt.IsZero())
	})

	t.Run("rejects non-linkable services", func(t *testing.T) {
		_, err := NewLinkedAccountConnection(ownerID, SourceTarget, "tok", "")
		assert.Error(t, err)
		_, err = NewLinkedAccountConnection(ownerID, SourceManual, "tok", "")
		assert.Error(t, err)
	})

	t.Run("rejects empty token", func(t *testing.T) {
		_, err := NewLinkedAccountConnection(ownerID, SourceBabylist, "", "")
		assert.Error(t, err)
	})

	t.Run("relink replaces credential", func(t *testing.T) {
		conn, err := NewLinkedAccountConnection(ownerID, SourceMyRegistry, "old", "jess")
		require.NoError(t, err)

		require.NoError(t, conn.Relink("new", "jessica"))
		assert.Equal(t, "new", conn.AccessToken)
		assert.Equal(t, "jessica", conn.Username)
	})
}
