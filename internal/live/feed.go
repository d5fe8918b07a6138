// Package live subscribes to the backend's websocket feed and forwards
// incoming messages into the chat store, so conversations update without a
// manual refresh.
package live

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/api"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/chatstore"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

// Event is one frame from the feed. Only message.new is acted on; unknown
// types are skipped so the server can grow the protocol.
type Event struct {
	Type    string         `json:"type"`
	RoomID  uint           `json:"room_id"`
	Message models.Message `json:"message"`
}

const (
	eventMessageNew = "message.new"

	reconnectDelay = 5 * time.Second
)

// Feed maintains the websocket connection for one logged-in session.
type Feed struct {
	endpoint string
	tokens   api.TokenSource
	store    *chatstore.Store
}

func NewFeed(endpoint string, tokens api.TokenSource, store *chatstore.Store) *Feed {
	return &Feed{endpoint: endpoint, tokens: tokens, store: store}
}

// Run connects and keeps reconnecting with a fixed delay until the context
// is cancelled. Intended to run in its own goroutine.
func (f *Feed) Run(ctx context.Context) {
	for {
		if err := f.connectAndRead(ctx); err != nil {
			log.Printf("live: connection lost: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (f *Feed) connectAndRead(ctx context.Context) error {
	endpoint, err := url.Parse(f.endpoint)
	if err != nil {
		return err
	}
	query := endpoint.Query()
	query.Set("token", f.tokens.Token())
	endpoint.RawQuery = query.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint.String(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("live: connected to %s", f.endpoint)

	// Close the socket when the context ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			log.Printf("live: dropping malformed frame: %v", err)
			continue
		}
		if event.Type != eventMessageNew {
			continue
		}
		f.store.ApplyIncoming(event.RoomID, event.Message)
	}
}
