package devserver

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

// allowed exchange status transitions, keyed by current status.
var exchangeTransitions = map[string][]string{
	models.ExchangePending:  {models.ExchangeAccepted, models.ExchangeRejected, models.ExchangeCancelled},
	models.ExchangeAccepted: {models.ExchangeCompleted, models.ExchangeCancelled},
}

func (s *Server) createExchange(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		SkillID uint   `json:"skill_id" binding:"required"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.store.mu.Lock()
	skill, ok := s.store.skills[req.SkillID]
	if !ok {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"error": "Skill not found"})
		return
	}
	if skill.UserID == userID {
		s.store.mu.Unlock()
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot exchange with your own skill"})
		return
	}
	for _, ex := range s.store.exchanges {
		if ex.RequesterID == userID && ex.SkillID == req.SkillID && ex.Status == models.ExchangePending {
			s.store.mu.Unlock()
			c.JSON(http.StatusConflict, gin.H{"error": "Exchange request already exists"})
			return
		}
	}

	now := time.Now()
	exchange := &models.Exchange{
		ID:          s.store.nextFor("exchange"),
		RequesterID: userID,
		SkillID:     req.SkillID,
		Message:     req.Message,
		Status:      models.ExchangePending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.exchanges[exchange.ID] = exchange
	out := s.store.viewExchange(exchange)
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, out)
}

func (s *Server) listExchanges(c *gin.Context) {
	userID := currentUserID(c)
	kind := c.Query("type")

	s.store.mu.Lock()
	exchanges := make([]models.Exchange, 0)
	for _, ex := range s.store.exchanges {
		skill := s.store.skills[ex.SkillID]
		sent := ex.RequesterID == userID
		received := skill != nil && skill.UserID == userID
		switch kind {
		case "sent":
			if !sent {
				continue
			}
		case "received":
			if !received {
				continue
			}
		default:
			if !sent && !received {
				continue
			}
		}
		exchanges = append(exchanges, s.store.viewExchange(ex))
	}
	s.store.mu.Unlock()

	sort.Slice(exchanges, func(i, j int) bool { return exchanges[i].CreatedAt.After(exchanges[j].CreatedAt) })
	c.JSON(http.StatusOK, exchanges)
}

func (s *Server) getExchange(c *gin.Context) {
	userID := currentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exchange ID"})
		return
	}

	s.store.mu.Lock()
	ex, ok := s.store.exchanges[uint(id)]
	if !ok {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"error": "Exchange not found"})
		return
	}
	skill := s.store.skills[ex.SkillID]
	if ex.RequesterID != userID && (skill == nil || skill.UserID != userID) {
		s.store.mu.Unlock()
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this exchange"})
		return
	}
	out := s.store.viewExchange(ex)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, out)
}

func (s *Server) updateExchangeStatus(c *gin.Context) {
	userID := currentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exchange ID"})
		return
	}

	var req struct {
		Status       string `json:"status" binding:"required,oneof=accepted rejected completed cancelled"`
		ResponseText string `json:"response_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.store.mu.Lock()
	ex, ok := s.store.exchanges[uint(id)]
	if !ok {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"error": "Exchange not found"})
		return
	}
	skill := s.store.skills[ex.SkillID]
	owner := skill != nil && skill.UserID == userID
	requester := ex.RequesterID == userID
	if !owner && !requester {
		s.store.mu.Unlock()
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this exchange"})
		return
	}
	// Accept/reject is the skill owner's call; cancel is the requester's.
	switch req.Status {
	case models.ExchangeAccepted, models.ExchangeRejected:
		if !owner {
			s.store.mu.Unlock()
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the skill owner can respond to a request"})
			return
		}
	case models.ExchangeCancelled:
		if !requester {
			s.store.mu.Unlock()
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the requester can cancel a request"})
			return
		}
	}
	if !transitionAllowed(ex.Status, req.Status) {
		s.store.mu.Unlock()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
		return
	}

	ex.Status = req.Status
	if req.ResponseText != "" {
		ex.ResponseText = req.ResponseText
	}
	ex.UpdatedAt = time.Now()
	out := s.store.viewExchange(ex)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, out)
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range exchangeTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// viewExchange embeds the requester and skill the way the production
// backend preloads them.
func (m *memStore) viewExchange(ex *models.Exchange) models.Exchange {
	out := *ex
	if requester, ok := m.users[ex.RequesterID]; ok {
		user := requester.User
		out.Requester = &user
	}
	if skill, ok := m.skills[ex.SkillID]; ok {
		sk := *skill
		if owner, ok := m.users[skill.UserID]; ok {
			user := owner.User
			sk.User = &user
		}
		out.Skill = &sk
	}
	return out
}
