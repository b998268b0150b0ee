// Package httptransport defines the wire-level DTOs for the review API.
package httptransport

import "time"

// ErrorResponse is the uniform error body for review endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ReviewResponse is the wire form of a review.
type ReviewResponse struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// CreateReviewRequest creates a review; one per author per title.
type CreateReviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// UpdateReviewRequest carries partial review changes.
type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// CommentResponse is the wire form of a comment.
type CommentResponse struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

// CreateCommentRequest attaches a comment to a review.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// UpdateCommentRequest carries partial comment changes.
type UpdateCommentRequest struct {
	Text *string `json:"text"`
}
