package models

import "time"

// Exchange statuses as the backend emits them.
const (
	ExchangePending   = "pending"
	ExchangeAccepted  = "accepted"
	ExchangeRejected  = "rejected"
	ExchangeCompleted = "completed"
	ExchangeCancelled = "cancelled"
)

// Exchange is a request from one user to trade against another user's skill.
type Exchange struct {
	ID           uint      `json:"id"`
	RequesterID  uint      `json:"requester_id"`
	SkillID      uint      `json:"skill_id"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	ResponseText string    `json:"response_text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Requester    *User     `json:"requester,omitempty"`
	Skill        *Skill    `json:"skill,omitempty"`
}
