package store

import (
	"context"
	"sync"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/api"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

type ExchangesAPI interface {
	CreateExchange(ctx context.Context, req api.CreateExchangeRequest) (*models.Exchange, error)
	ListExchanges(ctx context.Context, kind string) ([]models.Exchange, error)
	UpdateExchangeStatus(ctx context.Context, id uint, req api.UpdateExchangeStatusRequest) (*models.Exchange, error)
}

// Exchanges tracks the viewer's sent and received exchange requests.
type Exchanges struct {
	client ExchangesAPI

	mu        sync.Mutex
	exchanges []models.Exchange
}

func NewExchanges(client ExchangesAPI) *Exchanges {
	return &Exchanges{client: client}
}

// Fetch replaces the list. kind is "sent", "received" or empty for both.
func (e *Exchanges) Fetch(ctx context.Context, kind string) error {
	exchanges, err := e.client.ListExchanges(ctx, kind)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.exchanges = exchanges
	e.mu.Unlock()
	return nil
}

func (e *Exchanges) Create(ctx context.Context, req api.CreateExchangeRequest) (*models.Exchange, error) {
	exchange, err := e.client.CreateExchange(ctx, req)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.exchanges = append([]models.Exchange{*exchange}, e.exchanges...)
	e.mu.Unlock()
	return exchange, nil
}

// UpdateStatus transitions an exchange (accept/reject/complete/cancel) and
// replaces it in place.
func (e *Exchanges) UpdateStatus(ctx context.Context, id uint, req api.UpdateExchangeStatusRequest) (*models.Exchange, error) {
	exchange, err := e.client.UpdateExchangeStatus(ctx, id, req)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	for i := range e.exchanges {
		if e.exchanges[i].ID == exchange.ID {
			e.exchanges[i] = *exchange
			break
		}
	}
	e.mu.Unlock()
	return exchange, nil
}

func (e *Exchanges) List() []models.Exchange {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Exchange(nil), e.exchanges...)
}
