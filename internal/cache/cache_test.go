package cache_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/cache"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

func openTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Open(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

// TestRoomsRoundTrip verifies the room list survives a save/load cycle and
// that a later save replaces it wholesale.
func TestRoomsRoundTrip(t *testing.T) {
	// Arrange
	c := openTestCache(t)
	rooms := []models.ChatRoom{
		{ID: 1, OtherUser: models.User{ID: 2, Username: "ana"}, LastMessage: "hi"},
		{ID: 2, OtherUser: models.User{ID: 3, Username: "bob"}},
	}

	// Act
	require.NoError(t, c.SaveRooms(rooms))
	got, err := c.LoadRooms()

	// Assert
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ana", got[0].OtherUser.Username)

	// Act - replace with a shorter list
	require.NoError(t, c.SaveRooms(rooms[:1]))
	got, err = c.LoadRooms()

	// Assert
	require.NoError(t, err)
	assert.Len(t, got, 1, "save must replace, not merge")
}

// TestLoadEmptyCache verifies a fresh cache reports nothing without error.
func TestLoadEmptyCache(t *testing.T) {
	c := openTestCache(t)

	rooms, err := c.LoadRooms()
	require.NoError(t, err)
	assert.Nil(t, rooms)

	msgs, err := c.LoadMessages(1)
	require.NoError(t, err)
	assert.Nil(t, msgs)
}

// TestMessagesPerRoom verifies logs are stored per room and do not bleed
// into each other.
func TestMessagesPerRoom(t *testing.T) {
	// Arrange
	c := openTestCache(t)
	now := time.Now().Truncate(time.Second)
	require.NoError(t, c.SaveMessages(1, []models.Message{
		{ID: 1, ChatRoomID: 1, Content: "room one", CreatedAt: now},
	}))
	require.NoError(t, c.SaveMessages(2, []models.Message{
		{ID: 2, ChatRoomID: 2, Content: "room two", CreatedAt: now},
	}))

	// Act
	one, err1 := c.LoadMessages(1)
	two, err2 := c.LoadMessages(2)

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Len(t, one, 1)
	require.Len(t, two, 1)
	assert.Equal(t, "room one", one[0].Content)
	assert.Equal(t, "room two", two[0].Content)
}

// TestDeleteRoomDropsLogOnly verifies deleting a room removes its log but
// leaves other rooms' logs in place.
func TestDeleteRoomDropsLogOnly(t *testing.T) {
	// Arrange
	c := openTestCache(t)
	require.NoError(t, c.SaveMessages(1, []models.Message{{ID: 1, ChatRoomID: 1, Content: "bye"}}))
	require.NoError(t, c.SaveMessages(2, []models.Message{{ID: 2, ChatRoomID: 2, Content: "stay"}}))

	// Act
	require.NoError(t, c.DeleteRoom(1))

	// Assert
	gone, err := c.LoadMessages(1)
	require.NoError(t, err)
	assert.Nil(t, gone)
	kept, err := c.LoadMessages(2)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

// TestReopenPersists verifies the snapshot survives closing and reopening
// the file, which is the whole point of the cache.
func TestReopenPersists(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "chat.db")
	c, err := cache.Open(path)
	require.NoError(t, err)
	require.NoError(t, c.SaveRooms([]models.ChatRoom{{ID: 9, LastMessage: "persisted"}}))
	require.NoError(t, c.Close())

	// Act
	reopened, err := cache.Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	rooms, err := reopened.LoadRooms()

	// Assert
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "persisted", rooms[0].LastMessage)
}
