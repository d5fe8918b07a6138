package models

import "time"

// Skill levels and types accepted by the backend.
const (
	SkillOffering = "offering"
	SkillSeeking  = "seeking"
)

// Skill is one offered or sought skill listing.
type Skill struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Level       string    `json:"level"`
	SkillType   string    `json:"skill_type"`
	Tags        string    `json:"tags"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        *User     `json:"user,omitempty"`
}

// SkillsPage is the envelope of GET /skills.
type SkillsPage struct {
	Skills     []Skill    `json:"skills"`
	Pagination Pagination `json:"pagination"`
}
