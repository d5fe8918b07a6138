package chatstore

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/api"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/apierr"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

// API is the slice of the gateway the chat store consumes. *api.Client
// satisfies it; tests substitute a mock.
type API interface {
	ListChatRooms(ctx context.Context) ([]models.ChatRoom, error)
	CreateChatRoom(ctx context.Context, req api.CreateRoomRequest) (*models.ChatRoom, error)
	GetMessages(ctx context.Context, roomID uint, page, limit int) (*models.MessagesPage, error)
	SendMessage(ctx context.Context, roomID uint, req api.SendMessageRequest) (*models.Message, error)
	MarkMessagesRead(ctx context.Context, roomID uint) (int64, error)
	DeleteChatRoom(ctx context.Context, roomID uint) error
}

// Cache is the optional local snapshot the store writes through to, so a
// restart renders the last known state before the first fetch lands.
type Cache interface {
	SaveRooms(rooms []models.ChatRoom) error
	SaveMessages(roomID uint, messages []models.Message) error
	DeleteRoom(roomID uint) error
	LoadRooms() ([]models.ChatRoom, error)
	LoadMessages(roomID uint) ([]models.Message, error)
}

// Store mediates all room/message mutations between the view and the
// backend. Mutations are atomic under the mutex; network calls run on the
// caller's goroutine with no lock held.
type Store struct {
	client API
	cache  Cache

	mu    sync.Mutex
	state *State

	// fetchSeq issues a per-room sequence number to each message fetch.
	// A completion whose number is no longer the latest for its room is
	// discarded, so out-of-order responses cannot clobber newer state.
	fetchSeq map[uint]uint64

	changes chan struct{}
}

// New builds a store. cache may be nil.
func New(client API, cache Cache) *Store {
	return &Store{
		client:   client,
		cache:    cache,
		state:    NewState(),
		fetchSeq: make(map[uint]uint64),
		changes:  make(chan struct{}, 1),
	}
}

// Changes delivers a coalesced signal after every state mutation. The view
// selects on it and re-reads Snapshot.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

func (s *Store) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// Snapshot returns a copy the caller may keep across further mutations.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Hydrate seeds the state from the cache. Meant to run once at startup,
// before any fetch.
func (s *Store) Hydrate() {
	if s.cache == nil {
		return
	}
	rooms, err := s.cache.LoadRooms()
	if err != nil {
		log.Printf("chatstore: cache hydrate failed: %v", err)
		return
	}
	if len(rooms) == 0 {
		return
	}

	s.mu.Lock()
	s.state.ApplyRooms(rooms)
	for _, room := range rooms {
		if msgs, err := s.cache.LoadMessages(room.ID); err == nil && len(msgs) > 0 {
			s.state.ApplyMessages(room.ID, msgs)
		}
	}
	s.mu.Unlock()
	s.notify()
}

// FetchRooms replaces the full room list on success. On failure the prior
// list stays as it was.
func (s *Store) FetchRooms(ctx context.Context) error {
	s.mu.Lock()
	s.state.RoomsLoading = true
	s.state.LastError = ""
	s.mu.Unlock()
	s.notify()

	rooms, err := s.client.ListChatRooms(ctx)

	s.mu.Lock()
	s.state.RoomsLoading = false
	if err != nil {
		s.state.LastError = err.Error()
		s.mu.Unlock()
		s.notify()
		return err
	}
	s.state.ApplyRooms(rooms)
	snapshot := append([]models.ChatRoom(nil), s.state.Rooms...)
	s.mu.Unlock()

	s.persistRooms(snapshot)
	s.notify()
	return nil
}

// CreateRoom requests a room with the given participant and selects it.
// A room id already present locally is not inserted twice.
func (s *Store) CreateRoom(ctx context.Context, otherUserID uint, exchangeID *uint) (*models.ChatRoom, error) {
	s.mu.Lock()
	s.state.LastError = ""
	s.mu.Unlock()

	room, err := s.client.CreateChatRoom(ctx, api.CreateRoomRequest{
		OtherUserID: otherUserID,
		ExchangeID:  exchangeID,
	})

	s.mu.Lock()
	if err != nil {
		s.state.LastError = err.Error()
		s.mu.Unlock()
		s.notify()
		return nil, err
	}
	s.state.ApplyRoomCreated(*room)
	snapshot := append([]models.ChatRoom(nil), s.state.Rooms...)
	s.mu.Unlock()

	s.persistRooms(snapshot)
	s.notify()
	return room, nil
}

// FetchMessages replaces the room's entire log with the page returned.
// Concurrent fetches for different rooms are independent; for the same room
// only the most recently issued fetch may apply.
func (s *Store) FetchMessages(ctx context.Context, roomID uint, page, limit int) error {
	s.mu.Lock()
	s.fetchSeq[roomID]++
	seq := s.fetchSeq[roomID]
	s.state.MessagesLoading = true
	s.state.LastError = ""
	s.mu.Unlock()
	s.notify()

	pageResp, err := s.client.GetMessages(ctx, roomID, page, limit)

	s.mu.Lock()
	if seq != s.fetchSeq[roomID] {
		// A newer fetch for this room was issued while we were in
		// flight; this completion is stale either way.
		s.mu.Unlock()
		return nil
	}
	s.state.MessagesLoading = false
	if err != nil {
		s.state.LastError = err.Error()
		s.mu.Unlock()
		s.notify()
		return err
	}
	s.state.ApplyMessages(roomID, pageResp.Messages)
	msgs := append([]models.Message(nil), s.state.Messages[roomID]...)
	s.mu.Unlock()

	s.persistMessages(roomID, msgs)
	s.notify()
	return nil
}

// SendMessage posts content to a room. Whitespace-only content is rejected
// before any request; a second send into the same room while one is in
// flight is rejected as well. Nothing is appended until the server confirms.
func (s *Store) SendMessage(ctx context.Context, roomID uint, content, messageType string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apierr.Validation("message content cannot be empty")
	}

	s.mu.Lock()
	if s.state.Sending[roomID] {
		s.mu.Unlock()
		return nil, apierr.Validation("a send is already in progress for this room")
	}
	s.state.Sending[roomID] = true
	s.state.LastError = ""
	s.mu.Unlock()
	s.notify()

	msg, err := s.client.SendMessage(ctx, roomID, api.SendMessageRequest{
		Content:     content,
		MessageType: messageType,
	})

	s.mu.Lock()
	delete(s.state.Sending, roomID)
	if err != nil {
		// The log stays untouched; the view owns retrying the input.
		s.state.LastError = err.Error()
		s.mu.Unlock()
		s.notify()
		return nil, err
	}
	s.state.ApplyMessageSent(roomID, *msg)
	msgs := append([]models.Message(nil), s.state.Messages[roomID]...)
	rooms := append([]models.ChatRoom(nil), s.state.Rooms...)
	s.mu.Unlock()

	s.persistMessages(roomID, msgs)
	s.persistRooms(rooms)
	s.notify()
	return msg, nil
}

// MarkRead acknowledges the room server-side, then bulk-rewrites the local
// log as read. The rewrite never runs when the request failed.
func (s *Store) MarkRead(ctx context.Context, roomID uint) error {
	if _, err := s.client.MarkMessagesRead(ctx, roomID); err != nil {
		s.mu.Lock()
		s.state.LastError = err.Error()
		s.mu.Unlock()
		s.notify()
		return err
	}

	s.mu.Lock()
	s.state.ApplyMarkedRead(roomID, time.Now())
	msgs := append([]models.Message(nil), s.state.Messages[roomID]...)
	s.mu.Unlock()

	s.persistMessages(roomID, msgs)
	s.notify()
	return nil
}

// DeleteRoom removes the room and its log after the backend confirms, and
// clears the selection if the room was active.
func (s *Store) DeleteRoom(ctx context.Context, roomID uint) error {
	if err := s.client.DeleteChatRoom(ctx, roomID); err != nil {
		s.mu.Lock()
		s.state.LastError = err.Error()
		s.mu.Unlock()
		s.notify()
		return err
	}

	s.mu.Lock()
	s.state.ApplyRoomDeleted(roomID)
	rooms := append([]models.ChatRoom(nil), s.state.Rooms...)
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.DeleteRoom(roomID); err != nil {
			log.Printf("chatstore: cache delete failed for room %d: %v", roomID, err)
		}
	}
	s.persistRooms(rooms)
	s.notify()
	return nil
}

// SelectRoom marks a room active. Pure local transition, no network.
func (s *Store) SelectRoom(roomID uint) {
	s.mu.Lock()
	s.state.SelectRoom(roomID)
	s.mu.Unlock()
	s.notify()
}

// ClearSelection drops the active room.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.state.ClearSelection()
	s.mu.Unlock()
	s.notify()
}

// ApplyIncoming feeds a message pushed by the live feed into the state.
func (s *Store) ApplyIncoming(roomID uint, msg models.Message) {
	s.mu.Lock()
	s.state.ApplyIncoming(roomID, msg)
	msgs := append([]models.Message(nil), s.state.Messages[roomID]...)
	rooms := append([]models.ChatRoom(nil), s.state.Rooms...)
	s.mu.Unlock()

	s.persistMessages(roomID, msgs)
	s.persistRooms(rooms)
	s.notify()
}

func (s *Store) persistRooms(rooms []models.ChatRoom) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveRooms(rooms); err != nil {
		log.Printf("chatstore: cache write failed for room list: %v", err)
	}
}

func (s *Store) persistMessages(roomID uint, msgs []models.Message) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveMessages(roomID, msgs); err != nil {
		log.Printf("chatstore: cache write failed for room %d: %v", roomID, err)
	}
}
