package entities

import "time"

// Category is a slug-keyed title grouping ("Movies", "Books").
type Category struct {
	Name string
	Slug string
}

// Genre is a slug-keyed label attached to titles.
type Genre struct {
	Name string
	Slug string
}

// Title is a rateable work. CategorySlug and GenreSlugs reference existing
// catalog records; the aggregate rating lives with the review module and is
// joined in at read time.
type Title struct {
	ID           string
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
