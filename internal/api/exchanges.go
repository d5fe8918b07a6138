package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

type CreateExchangeRequest struct {
	SkillID uint   `json:"skill_id"`
	Message string `json:"message,omitempty"`
}

type UpdateExchangeStatusRequest struct {
	Status       string `json:"status"`
	ResponseText string `json:"response_text,omitempty"`
}

func (c *Client) CreateExchange(ctx context.Context, req CreateExchangeRequest) (*models.Exchange, error) {
	var out models.Exchange
	if err := c.post(ctx, "/exchanges", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListExchanges returns the viewer's exchanges. kind is "sent", "received" or
// empty for both.
func (c *Client) ListExchanges(ctx context.Context, kind string) ([]models.Exchange, error) {
	query := url.Values{}
	if kind != "" {
		query.Set("type", kind)
	}
	var out []models.Exchange
	if err := c.get(ctx, "/exchanges", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetExchange(ctx context.Context, id uint) (*models.Exchange, error) {
	var out models.Exchange
	if err := c.get(ctx, fmt.Sprintf("/exchanges/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateExchangeStatus(ctx context.Context, id uint, req UpdateExchangeStatusRequest) (*models.Exchange, error) {
	var out models.Exchange
	if err := c.put(ctx, fmt.Sprintf("/exchanges/%d/status", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
