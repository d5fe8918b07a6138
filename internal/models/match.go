package models

// Match is a backend-computed pairing of a sought skill with another user's
// offered skill. The score is consumed as-is; the ranking algorithm lives
// entirely server-side.
type Match struct {
	UserID         uint   `json:"user_id"`
	UserName       string `json:"user_name"`
	UserAvatar     string `json:"user_avatar"`
	OfferedSkillID uint   `json:"offered_skill_id"`
	OfferedSkill   string `json:"offered_skill"`
	SeekingSkillID uint   `json:"seeking_skill_id"`
	SeekingSkill   string `json:"seeking_skill"`
	MatchScore     int    `json:"match_score"`
}
