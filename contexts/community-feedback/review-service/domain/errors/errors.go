package errors

import "errors"

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrReviewExists    = errors.New("author already reviewed this title")
	ErrInvalidScore    = errors.New("score must be between 1 and 10")
	ErrTextRequired    = errors.New("text is required")
)
