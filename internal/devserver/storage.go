// Package devserver is an in-memory stand-in for the SkillSwap backend. It
// serves the same routes and wire shapes so the client, its stores and the
// integration tests run against real HTTP with no infrastructure behind it.
package devserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

// userRecord keeps the credential hash next to the public user, which never
// leaves the server.
type userRecord struct {
	models.User
	PasswordHash []byte
}

// roomRecord is the server-side room: both participants, unlike the
// per-viewer shape the API returns.
type roomRecord struct {
	ID            uint
	User1ID       uint
	User2ID       uint
	ExchangeID    *uint
	LastMessage   string
	LastMessageAt *time.Time
	CreatedAt     time.Time
}

func (r *roomRecord) hasParticipant(userID uint) bool {
	return r.User1ID == userID || r.User2ID == userID
}

func (r *roomRecord) otherParticipant(userID uint) uint {
	if r.User1ID == userID {
		return r.User2ID
	}
	return r.User1ID
}

// memStore owns all stub data behind one mutex. Handlers do short critical
// sections and copy out what they return.
type memStore struct {
	mu sync.Mutex

	nextID map[string]uint

	users     map[uint]*userRecord
	skills    map[uint]*models.Skill
	exchanges map[uint]*models.Exchange
	reviews   map[uint]*models.Review
	rooms     map[uint]*roomRecord
	messages  map[uint][]models.Message
}

func newMemStore() *memStore {
	return &memStore{
		nextID:    make(map[string]uint),
		users:     make(map[uint]*userRecord),
		skills:    make(map[uint]*models.Skill),
		exchanges: make(map[uint]*models.Exchange),
		reviews:   make(map[uint]*models.Review),
		rooms:     make(map[uint]*roomRecord),
		messages:  make(map[uint][]models.Message),
	}
}

func (m *memStore) nextFor(kind string) uint {
	m.nextID[kind]++
	return m.nextID[kind]
}

func (m *memStore) userByEmail(email string) *userRecord {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

func (m *memStore) userByUsername(username string) *userRecord {
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			return u
		}
	}
	return nil
}

// roomForPair finds an existing room between two users regardless of which
// side created it.
func (m *memStore) roomForPair(a, b uint) *roomRecord {
	for _, r := range m.rooms {
		if (r.User1ID == a && r.User2ID == b) || (r.User1ID == b && r.User2ID == a) {
			return r
		}
	}
	return nil
}

// roomsForUser returns the user's rooms, most recently active first.
func (m *memStore) roomsForUser(userID uint) []*roomRecord {
	var out []*roomRecord
	for _, r := range m.rooms {
		if r.hasParticipant(userID) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].CreatedAt, out[j].CreatedAt
		if out[i].LastMessageAt != nil {
			ti = *out[i].LastMessageAt
		}
		if out[j].LastMessageAt != nil {
			tj = *out[j].LastMessageAt
		}
		return ti.After(tj)
	})
	return out
}

// viewRoom converts a server room into the per-viewer wire shape.
func (m *memStore) viewRoom(r *roomRecord, viewerID uint) models.ChatRoom {
	other := m.users[r.otherParticipant(viewerID)]
	view := models.ChatRoom{
		ID:            r.ID,
		ExchangeID:    r.ExchangeID,
		LastMessage:   r.LastMessage,
		LastMessageAt: r.LastMessageAt,
		CreatedAt:     r.CreatedAt,
	}
	if other != nil {
		view.OtherUser = other.User
	}
	return view
}
