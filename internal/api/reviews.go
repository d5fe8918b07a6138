package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

type CreateReviewRequest struct {
	ExchangeID uint   `json:"exchange_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
	Tags       string `json:"tags,omitempty"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
	Tags    string `json:"tags,omitempty"`
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func (c *Client) CreateReview(ctx context.Context, req CreateReviewRequest) (*models.Review, error) {
	var out models.Review
	if err := c.post(ctx, "/reviews", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMyReviews returns reviews the viewer wrote.
func (c *Client) ListMyReviews(ctx context.Context, page, limit int) (*models.ReviewsPage, error) {
	var out models.ReviewsPage
	if err := c.get(ctx, "/reviews/my", pageQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUserReviews returns reviews received by the given user.
func (c *Client) ListUserReviews(ctx context.Context, userID uint, page, limit int) (*models.ReviewsPage, error) {
	var out models.ReviewsPage
	if err := c.get(ctx, fmt.Sprintf("/reviews/user/%d", userID), pageQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserRating returns the aggregated rating summary for a user.
func (c *Client) GetUserRating(ctx context.Context, userID uint) (*models.UserRating, error) {
	var out models.UserRating
	if err := c.get(ctx, fmt.Sprintf("/reviews/user/%d/rating", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPendingReviews returns completed exchanges the viewer has not yet
// reviewed.
func (c *Client) ListPendingReviews(ctx context.Context) ([]models.Exchange, error) {
	var out []models.Exchange
	if err := c.get(ctx, "/reviews/pending", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateReview(ctx context.Context, id uint, req UpdateReviewRequest) (*models.Review, error) {
	var out models.Review
	if err := c.put(ctx, fmt.Sprintf("/reviews/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReview(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/reviews/%d", id))
}
