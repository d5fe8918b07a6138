package models

import "time"

// User represents a marketplace account as the backend returns it.
// The password never crosses the wire back to the client.
type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRating is the aggregated review summary for one user.
type UserRating struct {
	UserID        uint    `json:"user_id"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
	Rating1Count  int     `json:"rating_1_count"`
	Rating2Count  int     `json:"rating_2_count"`
	Rating3Count  int     `json:"rating_3_count"`
	Rating4Count  int     `json:"rating_4_count"`
	Rating5Count  int     `json:"rating_5_count"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
