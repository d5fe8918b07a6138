// Package store holds the entity stores around the chat core: skills,
// matches, reviews and exchanges. Each mirrors one backend collection with
// mutex-guarded state the view reads through copies.
package store

import (
	"context"
	"sync"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/api"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

// SkillsAPI is the gateway slice the skills store consumes.
type SkillsAPI interface {
	ListSkills(ctx context.Context, filter api.SkillFilter) (*models.SkillsPage, error)
	ListMySkills(ctx context.Context) ([]models.Skill, error)
	CreateSkill(ctx context.Context, req api.SkillRequest) (*models.Skill, error)
	UpdateSkill(ctx context.Context, id uint, req api.SkillRequest) (*models.Skill, error)
	DeleteSkill(ctx context.Context, id uint) error
}

// Skills tracks the public listing and the viewer's own listings.
type Skills struct {
	client SkillsAPI

	mu         sync.Mutex
	skills     []models.Skill
	mySkills   []models.Skill
	pagination models.Pagination
}

func NewSkills(client SkillsAPI) *Skills {
	return &Skills{client: client}
}

// Fetch replaces the public listing with the filtered page.
func (s *Skills) Fetch(ctx context.Context, filter api.SkillFilter) error {
	page, err := s.client.ListSkills(ctx, filter)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.skills = page.Skills
	s.pagination = page.Pagination
	s.mu.Unlock()
	return nil
}

// FetchMine replaces the viewer's own listings.
func (s *Skills) FetchMine(ctx context.Context) error {
	skills, err := s.client.ListMySkills(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.mySkills = skills
	s.mu.Unlock()
	return nil
}

// Create inserts the new listing at the head of the viewer's list.
func (s *Skills) Create(ctx context.Context, req api.SkillRequest) (*models.Skill, error) {
	skill, err := s.client.CreateSkill(ctx, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.mySkills = append([]models.Skill{*skill}, s.mySkills...)
	s.mu.Unlock()
	return skill, nil
}

// Update replaces the listing in place, keeping its position.
func (s *Skills) Update(ctx context.Context, id uint, req api.SkillRequest) (*models.Skill, error) {
	skill, err := s.client.UpdateSkill(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.mySkills {
		if s.mySkills[i].ID == skill.ID {
			s.mySkills[i] = *skill
			break
		}
	}
	s.mu.Unlock()
	return skill, nil
}

// Delete drops the listing from the viewer's list once the backend confirms.
func (s *Skills) Delete(ctx context.Context, id uint) error {
	if err := s.client.DeleteSkill(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	kept := s.mySkills[:0]
	for _, skill := range s.mySkills {
		if skill.ID != id {
			kept = append(kept, skill)
		}
	}
	s.mySkills = kept
	s.mu.Unlock()
	return nil
}

// Listing returns a copy of the public page.
func (s *Skills) Listing() ([]models.Skill, models.Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Skill(nil), s.skills...), s.pagination
}

// Mine returns a copy of the viewer's listings.
func (s *Skills) Mine() []models.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Skill(nil), s.mySkills...)
}
