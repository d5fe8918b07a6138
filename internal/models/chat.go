package models

import "time"

// Message types accepted by the send endpoint.
const (
	MessageText   = "text"
	MessageImage  = "image"
	MessageFile   = "file"
	MessageSystem = "system"
)

// ChatRoom is a two-party conversation as seen from the current viewer:
// the backend collapses the participant pair into a single OtherUser.
type ChatRoom struct {
	// ID is the room's unique identifier.
	ID uint `json:"id"`
	// OtherUser is the conversation partner from the viewer's perspective.
	OtherUser User `json:"other_user"`
	// ExchangeID optionally links the room to a skill-exchange record.
	ExchangeID *uint `json:"exchange_id"`
	// LastMessage and LastMessageAt are the denormalized preview shown in
	// the room list. They must track the newest entry of the room's log.
	LastMessage   string     `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Message is one chat message. Logs are append-only per room except for the
// bulk is_read/read_at rewrite done by mark-as-read.
type Message struct {
	ID          uint       `json:"id"`
	ChatRoomID  uint       `json:"chat_room_id"`
	SenderID    uint       `json:"sender_id"`
	Content     string     `json:"content"`
	MessageType string     `json:"message_type"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Sender      *User      `json:"sender,omitempty"`
}

// Pagination is the page/limit/total envelope used by the skills and
// chat message endpoints.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// MessagesPage is the envelope of GET /chat/rooms/{id}/messages.
type MessagesPage struct {
	Messages   []Message  `json:"messages"`
	Pagination Pagination `json:"pagination"`
}
