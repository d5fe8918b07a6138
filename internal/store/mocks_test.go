package store_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/api"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

// MockSkillsAPI mocks the gateway slice consumed by the skills store.
type MockSkillsAPI struct {
	mock.Mock
}

func (m *MockSkillsAPI) ListSkills(ctx context.Context, filter api.SkillFilter) (*models.SkillsPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SkillsPage), args.Error(1)
}

func (m *MockSkillsAPI) ListMySkills(ctx context.Context) ([]models.Skill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *MockSkillsAPI) CreateSkill(ctx context.Context, req api.SkillRequest) (*models.Skill, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *MockSkillsAPI) UpdateSkill(ctx context.Context, id uint, req api.SkillRequest) (*models.Skill, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *MockSkillsAPI) DeleteSkill(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMatchesAPI mocks the match listing endpoint.
type MockMatchesAPI struct {
	mock.Mock
}

func (m *MockMatchesAPI) ListMatches(ctx context.Context) ([]models.Match, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Match), args.Error(1)
}

// MockExchangesAPI mocks the exchange endpoints.
type MockExchangesAPI struct {
	mock.Mock
}

func (m *MockExchangesAPI) CreateExchange(ctx context.Context, req api.CreateExchangeRequest) (*models.Exchange, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exchange), args.Error(1)
}

func (m *MockExchangesAPI) ListExchanges(ctx context.Context, kind string) ([]models.Exchange, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exchange), args.Error(1)
}

func (m *MockExchangesAPI) UpdateExchangeStatus(ctx context.Context, id uint, req api.UpdateExchangeStatusRequest) (*models.Exchange, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exchange), args.Error(1)
}

// MockReviewsAPI mocks the review endpoints.
type MockReviewsAPI struct {
	mock.Mock
}

func (m *MockReviewsAPI) CreateReview(ctx context.Context, req api.CreateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewsAPI) ListMyReviews(ctx context.Context, page, limit int) (*models.ReviewsPage, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewsPage), args.Error(1)
}

func (m *MockReviewsAPI) ListUserReviews(ctx context.Context, userID uint, page, limit int) (*models.ReviewsPage, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewsPage), args.Error(1)
}

func (m *MockReviewsAPI) GetUserRating(ctx context.Context, userID uint) (*models.UserRating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRating), args.Error(1)
}

func (m *MockReviewsAPI) ListPendingReviews(ctx context.Context) ([]models.Exchange, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exchange), args.Error(1)
}
