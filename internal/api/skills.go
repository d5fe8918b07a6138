package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

// SkillRequest is shared by create and update.
type SkillRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	SkillType   string `json:"skill_type"`
	Tags        string `json:"tags,omitempty"`
}

// SkillFilter narrows the public listing.
type SkillFilter struct {
	Category  string
	SkillType string
	Search    string
	Page      int
	Limit     int
}

func (f SkillFilter) query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.SkillType != "" {
		q.Set("skill_type", f.SkillType)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", fmt.Sprint(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", fmt.Sprint(f.Limit))
	}
	return q
}

func (c *Client) ListSkills(ctx context.Context, filter SkillFilter) (*models.SkillsPage, error) {
	var out models.SkillsPage
	if err := c.get(ctx, "/skills", filter.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMySkills returns the viewer's own listings, no envelope.
func (c *Client) ListMySkills(ctx context.Context) ([]models.Skill, error) {
	var out []models.Skill
	if err := c.get(ctx, "/skills/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSkill(ctx context.Context, id uint) (*models.Skill, error) {
	var out models.Skill
	if err := c.get(ctx, fmt.Sprintf("/skills/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSkill(ctx context.Context, req SkillRequest) (*models.Skill, error) {
	var out models.Skill
	if err := c.post(ctx, "/skills", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSkill(ctx context.Context, id uint, req SkillRequest) (*models.Skill, error) {
	var out models.Skill
	if err := c.put(ctx, fmt.Sprintf("/skills/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSkill(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/skills/%d", id))
}

type matchesEnvelope struct {
	Matches []models.Match `json:"matches"`
}

// ListMatches returns the backend-ranked match list. The score is opaque.
func (c *Client) ListMatches(ctx context.Context) ([]models.Match, error) {
	var out matchesEnvelope
	if err := c.get(ctx, "/matches", nil, &out); err != nil {
		return nil, err
	}
	return out.Matches, nil
}
