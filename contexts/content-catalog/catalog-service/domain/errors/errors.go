package errors

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrSlugTaken        = errors.New("slug already in use")
	ErrInvalidSlug      = errors.New("slug may contain only letters, digits, '-', '_' and '.'")
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidYear      = errors.New("year must be between 0 and the current year")
	ErrUnknownCategory  = errors.New("category slug references no existing category")
	ErrUnknownGenre     = errors.New("genre slug references no existing genre")
)
