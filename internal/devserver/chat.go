package devserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

func roomIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("roomId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return 0, false
	}
	return uint(id), true
}

// roomForViewer loads the room and enforces membership. Rooms of other users
// are indistinguishable from missing ones.
func (s *Server) roomForViewer(c *gin.Context, roomID uint) (*roomRecord, bool) {
	room, ok := s.store.rooms[roomID]
	if !ok || !room.hasParticipant(currentUserID(c)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat room not found"})
		return nil, false
	}
	return room, true
}

func (s *Server) listChatRooms(c *gin.Context) {
	userID := currentUserID(c)

	s.store.mu.Lock()
	records := s.store.roomsForUser(userID)
	rooms := make([]models.ChatRoom, 0, len(records))
	for _, r := range records {
		rooms = append(rooms, s.store.viewRoom(r, userID))
	}
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"chat_rooms": rooms})
}

func (s *Server) createChatRoom(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		OtherUserID uint  `json:"other_user_id" binding:"required"`
		ExchangeID  *uint `json:"exchange_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OtherUserID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot open a chat with yourself"})
		return
	}

	s.store.mu.Lock()
	if _, ok := s.store.users[req.OtherUserID]; !ok {
		s.store.mu.Unlock()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Participant does not exist"})
		return
	}

	// The pair already chatting: hand the existing room back instead of
	// splitting the conversation.
	if existing := s.store.roomForPair(userID, req.OtherUserID); existing != nil {
		view := s.store.viewRoom(existing, userID)
		s.store.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"chat_room": view})
		return
	}

	room := &roomRecord{
		ID:         s.store.nextFor("room"),
		User1ID:    userID,
		User2ID:    req.OtherUserID,
		ExchangeID: req.ExchangeID,
		CreatedAt:  time.Now(),
	}
	s.store.rooms[room.ID] = room
	view := s.store.viewRoom(room, userID)
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"chat_room": view})
}

func (s *Server) getMessages(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	s.store.mu.Lock()
	if _, ok := s.roomForViewer(c, roomID); !ok {
		s.store.mu.Unlock()
		return
	}
	log := s.store.messages[roomID]

	// Pages count back from the newest message; within a page the order
	// stays oldest first.
	end := len(log) - (page-1)*limit
	if end < 0 {
		end = 0
	}
	start := end - limit
	if start < 0 {
		start = 0
	}
	pageMsgs := append([]models.Message(nil), log[start:end]...)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, models.MessagesPage{
		Messages: pageMsgs,
		Pagination: models.Pagination{
			Page:  page,
			Limit: limit,
			Total: len(pageMsgs),
		},
	})
}

func (s *Server) sendMessage(c *gin.Context) {
	userID := currentUserID(c)
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Content     string `json:"content" binding:"required"`
		MessageType string `json:"message_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content cannot be empty"})
		return
	}
	if req.MessageType == "" {
		req.MessageType = models.MessageText
	}

	s.store.mu.Lock()
	room, ok := s.roomForViewer(c, roomID)
	if !ok {
		s.store.mu.Unlock()
		return
	}

	now := time.Now()
	msg := models.Message{
		ID:          s.store.nextFor("message"),
		ChatRoomID:  roomID,
		SenderID:    userID,
		Content:     req.Content,
		MessageType: req.MessageType,
		CreatedAt:   now,
	}
	s.store.messages[roomID] = append(s.store.messages[roomID], msg)
	room.LastMessage = req.Content
	room.LastMessageAt = &now
	recipient := room.otherParticipant(userID)
	s.store.mu.Unlock()

	s.hub.notifyMessage(recipient, roomID, msg)
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

func (s *Server) markMessagesRead(c *gin.Context) {
	userID := currentUserID(c)
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	s.store.mu.Lock()
	if _, ok := s.roomForViewer(c, roomID); !ok {
		s.store.mu.Unlock()
		return
	}

	// Only the other side's unread messages flip; the sender's own are
	// read by definition on their end.
	now := time.Now()
	var updated int64
	log := s.store.messages[roomID]
	for i := range log {
		if log[i].SenderID != userID && !log[i].IsRead {
			log[i].IsRead = true
			readAt := now
			log[i].ReadAt = &readAt
			updated++
		}
	}
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Messages marked as read", "updated_count": updated})
}

func (s *Server) deleteChatRoom(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	s.store.mu.Lock()
	if _, ok := s.roomForViewer(c, roomID); !ok {
		s.store.mu.Unlock()
		return
	}
	delete(s.store.rooms, roomID)
	delete(s.store.messages, roomID)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Chat room deleted successfully"})
}
