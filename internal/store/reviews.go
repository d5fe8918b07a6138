package store

import (
	"context"
	"sync"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/api"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

type ReviewsAPI interface {
	CreateReview(ctx context.Context, req api.CreateReviewRequest) (*models.Review, error)
	ListMyReviews(ctx context.Context, page, limit int) (*models.ReviewsPage, error)
	ListUserReviews(ctx context.Context, userID uint, page, limit int) (*models.ReviewsPage, error)
	GetUserRating(ctx context.Context, userID uint) (*models.UserRating, error)
	ListPendingReviews(ctx context.Context) ([]models.Exchange, error)
}

// Reviews tracks the viewer's written reviews, reviews of other users being
// browsed, the pending-review queue and rating summaries.
type Reviews struct {
	client ReviewsAPI

	mu          sync.Mutex
	myReviews   []models.Review
	userReviews []models.Review
	pending     []models.Exchange
	rating      *models.UserRating
	pagination  models.ReviewPagination
}

func NewReviews(client ReviewsAPI) *Reviews {
	return &Reviews{client: client}
}

// Create posts a review, prepends it to the viewer's list and clears the
// reviewed exchange from the pending queue.
func (r *Reviews) Create(ctx context.Context, req api.CreateReviewRequest) (*models.Review, error) {
	review, err := r.client.CreateReview(ctx, req)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.myReviews = append([]models.Review{*review}, r.myReviews...)
	kept := r.pending[:0]
	for _, ex := range r.pending {
		if ex.ID != review.ExchangeID {
			kept = append(kept, ex)
		}
	}
	r.pending = kept
	r.mu.Unlock()
	return review, nil
}

func (r *Reviews) FetchMine(ctx context.Context, page, limit int) error {
	resp, err := r.client.ListMyReviews(ctx, page, limit)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.myReviews = resp.Reviews
	r.pagination = resp.Pagination
	r.mu.Unlock()
	return nil
}

func (r *Reviews) FetchForUser(ctx context.Context, userID uint, page, limit int) error {
	resp, err := r.client.ListUserReviews(ctx, userID, page, limit)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.userReviews = resp.Reviews
	r.pagination = resp.Pagination
	r.mu.Unlock()
	return nil
}

func (r *Reviews) FetchRating(ctx context.Context, userID uint) (*models.UserRating, error) {
	rating, err := r.client.GetUserRating(ctx, userID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.rating = rating
	r.mu.Unlock()
	return rating, nil
}

func (r *Reviews) FetchPending(ctx context.Context) error {
	pending, err := r.client.ListPendingReviews(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.pending = pending
	r.mu.Unlock()
	return nil
}

func (r *Reviews) Mine() []models.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Review(nil), r.myReviews...)
}

func (r *Reviews) ForUser() []models.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Review(nil), r.userReviews...)
}

func (r *Reviews) Pending() []models.Exchange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Exchange(nil), r.pending...)
}

func (r *Reviews) Rating() *models.UserRating {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rating
}
