package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/apierr"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

// CreateRoomRequest opens (or re-opens) a conversation with another user,
// optionally tied to an exchange.
type CreateRoomRequest struct {
	OtherUserID uint  `json:"other_user_id"`
	ExchangeID  *uint `json:"exchange_id,omitempty"`
}

// SendMessageRequest is the body of the send endpoint. MessageType defaults
// to "text" server-side when empty.
type SendMessageRequest struct {
	Content     string `json:"content"`
	MessageType string `json:"message_type,omitempty"`
}

type roomsEnvelope struct {
	ChatRooms []models.ChatRoom `json:"chat_rooms"`
}

type roomEnvelope struct {
	ChatRoom *models.ChatRoom `json:"chat_room"`
}

type messageEnvelope struct {
	Message *models.Message `json:"message"`
}

type markReadResponse struct {
	UpdatedCount int64 `json:"updated_count"`
}

// ListChatRooms returns the viewer's rooms in server order.
func (c *Client) ListChatRooms(ctx context.Context) ([]models.ChatRoom, error) {
	var out roomsEnvelope
	if err := c.get(ctx, "/chat/rooms", nil, &out); err != nil {
		return nil, err
	}
	return out.ChatRooms, nil
}

// CreateChatRoom requests a room with the given participant. The backend
// returns the existing room when the pair already has one.
func (c *Client) CreateChatRoom(ctx context.Context, req CreateRoomRequest) (*models.ChatRoom, error) {
	var out roomEnvelope
	if err := c.post(ctx, "/chat/rooms", req, &out); err != nil {
		return nil, err
	}
	if out.ChatRoom == nil || out.ChatRoom.ID == 0 {
		return nil, apierr.Validation("create room: response missing chat_room")
	}
	return out.ChatRoom, nil
}

// GetMessages fetches one page of a room's log, oldest first. page and limit
// of 0 fall back to the server defaults.
func (c *Client) GetMessages(ctx context.Context, roomID uint, page, limit int) (*models.MessagesPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var out models.MessagesPage
	if err := c.get(ctx, fmt.Sprintf("/chat/rooms/%d/messages", roomID), query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage posts a message and returns the server-assigned entry.
func (c *Client) SendMessage(ctx context.Context, roomID uint, req SendMessageRequest) (*models.Message, error) {
	var out messageEnvelope
	if err := c.post(ctx, fmt.Sprintf("/chat/rooms/%d/messages", roomID), req, &out); err != nil {
		return nil, err
	}
	if out.Message == nil || out.Message.ID == 0 {
		return nil, apierr.Validation("send message: response missing message")
	}
	return out.Message, nil
}

// MarkMessagesRead acknowledges the room server-side and reports how many
// messages the backend flipped.
func (c *Client) MarkMessagesRead(ctx context.Context, roomID uint) (int64, error) {
	var out markReadResponse
	if err := c.put(ctx, fmt.Sprintf("/chat/rooms/%d/read", roomID), nil, &out); err != nil {
		return 0, err
	}
	return out.UpdatedCount, nil
}

// DeleteChatRoom removes the room server-side.
func (c *Client) DeleteChatRoom(ctx context.Context, roomID uint) error {
	return c.delete(ctx, fmt.Sprintf("/chat/rooms/%d", roomID))
}
