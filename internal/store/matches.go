package store

import (
	"context"
	"sync"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

type MatchesAPI interface {
	ListMatches(ctx context.Context) ([]models.Match, error)
}

// Matches holds the backend-ranked match list. The ranking is consumed
// as-is; order is preserved exactly as returned.
type Matches struct {
	client MatchesAPI

	mu      sync.Mutex
	matches []models.Match
}

func NewMatches(client MatchesAPI) *Matches {
	return &Matches{client: client}
}

func (m *Matches) Fetch(ctx context.Context) error {
	matches, err := m.client.ListMatches(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.matches = matches
	m.mu.Unlock()
	return nil
}

func (m *Matches) List() []models.Match {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Match(nil), m.matches...)
}
