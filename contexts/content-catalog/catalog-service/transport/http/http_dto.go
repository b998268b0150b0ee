// Package httptransport defines the wire-level DTOs for the catalog API.
package httptransport

// ErrorResponse is the uniform error body for catalog endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CategoryResponse is the wire form of a category.
type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateCategoryRequest creates a category keyed by its slug.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// GenreResponse is the wire form of a genre.
type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateGenreRequest creates a genre keyed by its slug.
type CreateGenreRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TitleResponse is a title joined with its category, genres, and the rounded
// aggregate review score. Rating is null until the first review lands.
type TitleResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Rating      *int             `json:"rating"`
	Description string           `json:"description,omitempty"`
	Category    CategoryResponse `json:"category"`
	Genres      []GenreResponse  `json:"genre"`
}

// CreateTitleRequest creates a title referencing existing catalog slugs.
type CreateTitleRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genres      []string `json:"genre"`
}

// UpdateTitleRequest carries partial title changes; absent fields are left
// untouched.
type UpdateTitleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genres      *[]string `json:"genre"`
}
