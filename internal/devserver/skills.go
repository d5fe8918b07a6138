package devserver

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

type skillRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Level       string `json:"level" binding:"required,oneof=beginner intermediate advanced expert"`
	SkillType   string `json:"skill_type" binding:"required,oneof=offering seeking"`
	Tags        string `json:"tags"`
}

func skillIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skill ID"})
		return 0, false
	}
	return uint(id), true
}

func (s *Server) createSkill(c *gin.Context) {
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	skill := &models.Skill{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
		SkillType:   req.SkillType,
		Tags:        req.Tags,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.store.mu.Lock()
	skill.ID = s.store.nextFor("skill")
	s.store.skills[skill.ID] = skill
	out := *skill
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, out)
}

func (s *Server) listSkills(c *gin.Context) {
	category := c.Query("category")
	skillType := c.Query("skill_type")
	search := strings.ToLower(c.Query("search"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	s.store.mu.Lock()
	var all []models.Skill
	for _, skill := range s.store.skills {
		if !skill.IsActive {
			continue
		}
		if category != "" && skill.Category != category {
			continue
		}
		if skillType != "" && skill.SkillType != skillType {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(skill.Title), search) &&
			!strings.Contains(strings.ToLower(skill.Description), search) {
			continue
		}
		out := *skill
		if owner, ok := s.store.users[skill.UserID]; ok {
			user := owner.User
			out.User = &user
		}
		all = append(all, out)
	}
	s.store.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, models.SkillsPage{
		Skills:     all[start:end],
		Pagination: models.Pagination{Page: page, Limit: limit, Total: total},
	})
}

func (s *Server) listMySkills(c *gin.Context) {
	userID := currentUserID(c)

	s.store.mu.Lock()
	skills := make([]models.Skill, 0)
	for _, skill := range s.store.skills {
		if skill.UserID == userID {
			skills = append(skills, *skill)
		}
	}
	s.store.mu.Unlock()

	sort.Slice(skills, func(i, j int) bool { return skills[i].CreatedAt.After(skills[j].CreatedAt) })
	c.JSON(http.StatusOK, skills)
}

func (s *Server) getSkill(c *gin.Context) {
	id, ok := skillIDParam(c)
	if !ok {
		return
	}
	s.store.mu.Lock()
	skill, ok := s.store.skills[id]
	var out models.Skill
	if ok {
		out = *skill
		if owner, exists := s.store.users[skill.UserID]; exists {
			user := owner.User
			out.User = &user
		}
	}
	s.store.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Skill not found"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) updateSkill(c *gin.Context) {
	id, ok := skillIDParam(c)
	if !ok {
		return
	}
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.store.mu.Lock()
	skill, ok := s.store.skills[id]
	if !ok {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"error": "Skill not found"})
		return
	}
	if skill.UserID != currentUserID(c) {
		s.store.mu.Unlock()
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own skills"})
		return
	}
	skill.Title = req.Title
	skill.Description = req.Description
	skill.Category = req.Category
	skill.Level = req.Level
	skill.SkillType = req.SkillType
	skill.Tags = req.Tags
	skill.UpdatedAt = time.Now()
	out := *skill
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteSkill(c *gin.Context) {
	id, ok := skillIDParam(c)
	if !ok {
		return
	}

	s.store.mu.Lock()
	skill, ok := s.store.skills[id]
	if !ok {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"error": "Skill not found"})
		return
	}
	if skill.UserID != currentUserID(c) {
		s.store.mu.Unlock()
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own skills"})
		return
	}
	delete(s.store.skills, id)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Skill deleted successfully"})
}

// listMatches pairs the viewer's seeking skills with other users' offered
// skills. The scoring here is a local stand-in for the production matcher,
// which this client treats as a black box either way.
func (s *Server) listMatches(c *gin.Context) {
	userID := currentUserID(c)

	s.store.mu.Lock()
	var seeking, offered []*models.Skill
	for _, skill := range s.store.skills {
		if !skill.IsActive {
			continue
		}
		switch {
		case skill.UserID == userID && skill.SkillType == models.SkillSeeking:
			seeking = append(seeking, skill)
		case skill.UserID != userID && skill.SkillType == models.SkillOffering:
			offered = append(offered, skill)
		}
	}

	var matches []models.Match
	for _, want := range seeking {
		for _, have := range offered {
			score := matchScore(want, have)
			if score == 0 {
				continue
			}
			owner := s.store.users[have.UserID]
			if owner == nil {
				continue
			}
			matches = append(matches, models.Match{
				UserID:         owner.ID,
				UserName:       owner.FullName,
				UserAvatar:     owner.Avatar,
				OfferedSkillID: have.ID,
				OfferedSkill:   have.Title,
				SeekingSkillID: want.ID,
				SeekingSkill:   want.Title,
				MatchScore:     score,
			})
		}
	}
	s.store.mu.Unlock()

	sort.Slice(matches, func(i, j int) bool { return matches[i].MatchScore > matches[j].MatchScore })
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func matchScore(want, have *models.Skill) int {
	score := 0
	if strings.EqualFold(want.Category, have.Category) {
		score += 50
	}
	wantWords := strings.Fields(strings.ToLower(want.Title))
	haveTitle := strings.ToLower(have.Title)
	for _, word := range wantWords {
		if strings.Contains(haveTitle, word) {
			score += 25
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}
