package devserver

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

func (s *Server) createReview(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		ExchangeID uint   `json:"exchange_id" binding:"required"`
		Rating     int    `json:"rating" binding:"required,min=1,max=5"`
		Comment    string `json:"comment"`
		Tags       string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.store.mu.Lock()
	ex, ok := s.store.exchanges[req.ExchangeID]
	if !ok {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"error": "Exchange not found"})
		return
	}
	if ex.Status != models.ExchangeCompleted {
		s.store.mu.Unlock()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Can only review completed exchanges"})
		return
	}
	skill := s.store.skills[ex.SkillID]
	if skill == nil || (ex.RequesterID != userID && skill.UserID != userID) {
		s.store.mu.Unlock()
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only review exchanges you're part of"})
		return
	}
	for _, r := range s.store.reviews {
		if r.ExchangeID == req.ExchangeID && r.ReviewerID == userID {
			s.store.mu.Unlock()
			c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this exchange"})
			return
		}
	}

	revieweeID := ex.RequesterID
	if ex.RequesterID == userID {
		revieweeID = skill.UserID
	}

	review := &models.Review{
		ID:         s.store.nextFor("review"),
		ExchangeID: req.ExchangeID,
		ReviewerID: userID,
		RevieweeID: revieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Tags:       req.Tags,
		CreatedAt:  time.Now(),
	}
	s.store.reviews[review.ID] = review
	out := s.store.viewReview(review)
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, out)
}

func reviewPageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func paginateReviews(reviews []models.Review, page, limit int) models.ReviewsPage {
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })

	total := len(reviews)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return models.ReviewsPage{
		Reviews: reviews[start:end],
		Pagination: models.ReviewPagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			PerPage:     limit,
		},
	}
}

func (s *Server) listMyReviews(c *gin.Context) {
	userID := currentUserID(c)
	page, limit := reviewPageParams(c)

	s.store.mu.Lock()
	var reviews []models.Review
	for _, r := range s.store.reviews {
		if r.ReviewerID == userID {
			reviews = append(reviews, s.store.viewReview(r))
		}
	}
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, paginateReviews(reviews, page, limit))
}

func (s *Server) listUserReviews(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	page, limit := reviewPageParams(c)

	s.store.mu.Lock()
	var reviews []models.Review
	for _, r := range s.store.reviews {
		if r.RevieweeID == uint(id) {
			reviews = append(reviews, s.store.viewReview(r))
		}
	}
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, paginateReviews(reviews, page, limit))
}

func (s *Server) getUserRating(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	rating := models.UserRating{UserID: uint(id)}
	var sum int

	s.store.mu.Lock()
	for _, r := range s.store.reviews {
		if r.RevieweeID != uint(id) {
			continue
		}
		rating.TotalReviews++
		sum += r.Rating
		switch r.Rating {
		case 1:
			rating.Rating1Count++
		case 2:
			rating.Rating2Count++
		case 3:
			rating.Rating3Count++
		case 4:
			rating.Rating4Count++
		case 5:
			rating.Rating5Count++
		}
	}
	s.store.mu.Unlock()

	if rating.TotalReviews > 0 {
		rating.AverageRating = float64(sum) / float64(rating.TotalReviews)
	}
	c.JSON(http.StatusOK, rating)
}

// listPendingReviews returns completed exchanges the viewer has not yet
// reviewed.
func (s *Server) listPendingReviews(c *gin.Context) {
	userID := currentUserID(c)

	s.store.mu.Lock()
	pending := make([]models.Exchange, 0)
	for _, ex := range s.store.exchanges {
		if ex.Status != models.ExchangeCompleted {
			continue
		}
		skill := s.store.skills[ex.SkillID]
		if ex.RequesterID != userID && (skill == nil || skill.UserID != userID) {
			continue
		}
		reviewed := false
		for _, r := range s.store.reviews {
			if r.ExchangeID == ex.ID && r.ReviewerID == userID {
				reviewed = true
				break
			}
		}
		if !reviewed {
			pending = append(pending, s.store.viewExchange(ex))
		}
	}
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, pending)
}

func (s *Server) updateReview(c *gin.Context) {
	userID := currentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
		Tags    string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.store.mu.Lock()
	review, ok := s.store.reviews[uint(id)]
	if !ok {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	if review.ReviewerID != userID {
		s.store.mu.Unlock()
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own reviews"})
		return
	}
	review.Rating = req.Rating
	review.Comment = req.Comment
	review.Tags = req.Tags
	out := s.store.viewReview(review)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteReview(c *gin.Context) {
	userID := currentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	s.store.mu.Lock()
	review, ok := s.store.reviews[uint(id)]
	if !ok {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	if review.ReviewerID != userID {
		s.store.mu.Unlock()
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own reviews"})
		return
	}
	delete(s.store.reviews, uint(id))
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

func (m *memStore) viewReview(r *models.Review) models.Review {
	out := *r
	if reviewer, ok := m.users[r.ReviewerID]; ok {
		user := reviewer.User
		out.Reviewer = &user
	}
	if reviewee, ok := m.users[r.RevieweeID]; ok {
		user := reviewee.User
		out.Reviewee = &user
	}
	return out
}
