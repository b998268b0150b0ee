package entities

import "time"

// Review is a single author's scored opinion on a title. Each author holds at
// most one review per title.
type Review struct {
	ID             string
	TitleID        string
	AuthorID       string
	AuthorUsername string
	Text           string
	Score          int
	PubDate        time.Time
}

// Comment is a threaded reply attached to a review.
type Comment struct {
	ID             string
	ReviewID       string
	AuthorID       string
	AuthorUsername string
	Text           string
	PubDate        time.Time
}
