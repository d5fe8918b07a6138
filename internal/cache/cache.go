// Package cache is a local bbolt snapshot of the chat state, so the client
// can render the last known rooms and logs before the first fetch returns.
// Contents are advisory: every successful fetch replaces them wholesale.
package cache

import (
	"encoding/json"
	"strconv"

	bolt "go.etcd.io/bbolt"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

var (
	bucketRooms    = []byte("rooms")
	bucketMessages = []byte("messages")

	keyRoomList = []byte("list")
)

// Cache wraps one bolt file. Safe for concurrent use; bolt serializes
// writers itself.
type Cache struct {
	db *bolt.DB
}

// Open creates or opens the cache file and ensures the buckets exist.
func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRooms); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketMessages)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

func roomKey(roomID uint) []byte {
	return []byte(strconv.FormatUint(uint64(roomID), 10))
}

// SaveRooms stores the room list as one blob.
func (c *Cache) SaveRooms(rooms []models.ChatRoom) error {
	data, err := json.Marshal(rooms)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRooms).Put(keyRoomList, data)
	})
}

// LoadRooms returns the cached room list, nil when nothing is cached.
func (c *Cache) LoadRooms() ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketRooms).Get(keyRoomList)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &rooms)
	})
	return rooms, err
}

// SaveMessages replaces the cached log for one room.
func (c *Cache) SaveMessages(roomID uint, messages []models.Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMessages).Put(roomKey(roomID), data)
	})
}

// LoadMessages returns a room's cached log, nil when absent.
func (c *Cache) LoadMessages(roomID uint) ([]models.Message, error) {
	var messages []models.Message
	err := c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketMessages).Get(roomKey(roomID))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &messages)
	})
	return messages, err
}

// DeleteRoom drops a room's cached log. The room list blob is rewritten by
// the store right after, so it is not touched here.
func (c *Cache) DeleteRoom(roomID uint) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMessages).Delete(roomKey(roomID))
	})
}
