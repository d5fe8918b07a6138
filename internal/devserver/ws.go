package devserver

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local development tool; origin checking would only get in the way.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsEvent mirrors the frame the client's live feed decodes.
type wsEvent struct {
	Type    string         `json:"type"`
	RoomID  uint           `json:"room_id"`
	Message models.Message `json:"message"`
}

// wsHub tracks open sockets per user. One user may hold several (multiple
// terminals); all of them get every event.
type wsHub struct {
	mu    sync.Mutex
	conns map[uint][]*websocket.Conn
}

func newWSHub() *wsHub {
	return &wsHub{conns: make(map[uint][]*websocket.Conn)}
}

func (h *wsHub) add(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[userID] = append(h.conns[userID], conn)
	h.mu.Unlock()
}

func (h *wsHub) remove(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	kept := h.conns[userID][:0]
	for _, c := range h.conns[userID] {
		if c != conn {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		delete(h.conns, userID)
	} else {
		h.conns[userID] = kept
	}
	h.mu.Unlock()
	conn.Close()
}

// notifyMessage pushes a new message to the recipient's sockets. Failures
// just drop the socket; the client reconnects and refetches.
func (h *wsHub) notifyMessage(recipient uint, roomID uint, msg models.Message) {
	event := wsEvent{Type: "message.new", RoomID: roomID, Message: msg}

	h.mu.Lock()
	conns := append([]*websocket.Conn(nil), h.conns[recipient]...)
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("ws: dropping connection for user %d: %v", recipient, err)
			h.remove(recipient, conn)
		}
	}
}

// serveWebSocket upgrades GET /ws?token=... and parks the connection until
// the peer goes away. The feed is push-only; inbound frames are discarded.
func (s *Server) serveWebSocket(c *gin.Context) {
	userID, ok := s.parseToken(c.Query("token"))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}
	s.hub.add(userID, conn)

	go func() {
		defer s.hub.remove(userID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
