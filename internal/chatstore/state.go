// Package chatstore is the single source of truth for chat rooms and their
// message logs. State lives in an explicit struct mutated only through pure
// transition methods; the Store wraps those transitions with locking and the
// network calls, so the two layers are testable apart.
package chatstore

import (
	"time"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

// State is the normalized chat state: the room list plus one ordered message
// log per room id. The view reads snapshots of it and never mutates it.
type State struct {
	// Rooms is ordered most-recently-active first once sends start
	// happening; until then server order is preserved.
	Rooms []models.ChatRoom
	// ActiveRoomID is the selected room, 0 when none.
	ActiveRoomID uint
	// Messages maps room id to that room's log, oldest first.
	Messages map[uint][]models.Message

	RoomsLoading    bool
	MessagesLoading bool
	// Sending marks rooms with a send in flight; re-submission for such a
	// room is rejected until the flag clears.
	Sending map[uint]bool
	// LastError is the most recent surfaced failure, display-ready.
	LastError string
}

func NewState() *State {
	return &State{
		Messages: make(map[uint][]models.Message),
		Sending:  make(map[uint]bool),
	}
}

// ApplyRooms replaces the full room list. Logs are kept; a fetch never
// touches them.
func (s *State) ApplyRooms(rooms []models.ChatRoom) {
	s.Rooms = rooms
}

// ApplyRoomCreated inserts the room at the head unless a room with the same
// id is already listed (a racing list refresh may have landed first), and
// selects it either way.
func (s *State) ApplyRoomCreated(room models.ChatRoom) {
	if s.roomIndex(room.ID) < 0 {
		s.Rooms = append([]models.ChatRoom{room}, s.Rooms...)
	}
	s.ActiveRoomID = room.ID
}

// ApplyMessages replaces the room's entire log with the fetched page.
// Other rooms' logs are untouched.
func (s *State) ApplyMessages(roomID uint, messages []models.Message) {
	if messages == nil {
		messages = []models.Message{}
	}
	s.Messages[roomID] = messages
}

// ApplyMessageSent appends a server-confirmed message, refreshes the room's
// preview and moves the room to the head of the list.
func (s *State) ApplyMessageSent(roomID uint, msg models.Message) {
	s.appendMessage(roomID, msg)
}

// ApplyIncoming handles a message pushed from the live feed. Same shape as a
// confirmed send: the log grows, the preview follows, the room bubbles up.
func (s *State) ApplyIncoming(roomID uint, msg models.Message) {
	s.appendMessage(roomID, msg)
}

func (s *State) appendMessage(roomID uint, msg models.Message) {
	s.Messages[roomID] = append(s.Messages[roomID], msg)

	idx := s.roomIndex(roomID)
	if idx < 0 {
		// Unknown room: keep the log, the room itself arrives with the
		// next list fetch.
		return
	}

	at := msg.CreatedAt
	s.Rooms[idx].LastMessage = msg.Content
	s.Rooms[idx].LastMessageAt = &at

	if idx > 0 {
		moved := s.Rooms[idx]
		s.Rooms = append(s.Rooms[:idx], s.Rooms[idx+1:]...)
		s.Rooms = append([]models.ChatRoom{moved}, s.Rooms...)
	}
}

// ApplyMarkedRead rewrites every message currently in the room's log as read
// with the given timestamp. Runs only after the read request succeeded.
func (s *State) ApplyMarkedRead(roomID uint, at time.Time) {
	log := s.Messages[roomID]
	for i := range log {
		log[i].IsRead = true
		readAt := at
		log[i].ReadAt = &readAt
	}
}

// ApplyRoomDeleted removes the room and discards its log. Selection clears
// when the deleted room was active.
func (s *State) ApplyRoomDeleted(roomID uint) {
	if idx := s.roomIndex(roomID); idx >= 0 {
		s.Rooms = append(s.Rooms[:idx], s.Rooms[idx+1:]...)
	}
	delete(s.Messages, roomID)
	if s.ActiveRoomID == roomID {
		s.ActiveRoomID = 0
	}
}

// SelectRoom and ClearSelection are pure local transitions.
func (s *State) SelectRoom(roomID uint) {
	s.ActiveRoomID = roomID
}

func (s *State) ClearSelection() {
	s.ActiveRoomID = 0
}

// Room returns the listed room with the given id, or nil.
func (s *State) Room(roomID uint) *models.ChatRoom {
	if idx := s.roomIndex(roomID); idx >= 0 {
		return &s.Rooms[idx]
	}
	return nil
}

func (s *State) roomIndex(roomID uint) int {
	for i := range s.Rooms {
		if s.Rooms[i].ID == roomID {
			return i
		}
	}
	return -1
}

// clone copies the state deeply enough that a reader can hold it across
// further store mutations.
func (s *State) clone() State {
	out := State{
		Rooms:           append([]models.ChatRoom(nil), s.Rooms...),
		ActiveRoomID:    s.ActiveRoomID,
		Messages:        make(map[uint][]models.Message, len(s.Messages)),
		RoomsLoading:    s.RoomsLoading,
		MessagesLoading: s.MessagesLoading,
		Sending:         make(map[uint]bool, len(s.Sending)),
		LastError:       s.LastError,
	}
	for id, log := range s.Messages {
		out.Messages[id] = append([]models.Message(nil), log...)
	}
	for id, v := range s.Sending {
		out.Sending[id] = v
	}
	return out
}
