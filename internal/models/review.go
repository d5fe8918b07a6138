package models

import "time"

// Review is a rating left for the other party of a completed exchange.
type Review struct {
	ID         uint      `json:"id"`
	ExchangeID uint      `json:"exchange_id"`
	ReviewerID uint      `json:"reviewer_id"`
	RevieweeID uint      `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Tags       string    `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	Reviewer   *User     `json:"reviewer,omitempty"`
	Reviewee   *User     `json:"reviewee,omitempty"`
}

// ReviewPagination uses the review endpoints' envelope keys, which differ
// from the page/limit/total style used elsewhere.
type ReviewPagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
	PerPage     int `json:"per_page"`
}

// ReviewsPage is the envelope of the review list endpoints.
type ReviewsPage struct {
	Reviews    []Review         `json:"reviews"`
	Pagination ReviewPagination `json:"pagination"`
}
