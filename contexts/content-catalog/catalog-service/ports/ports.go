package ports

import (
	"context"
	"time"

	"ratehub/contexts/content-catalog/catalog-service/domain/entities"
)

type CategoryRepository interface {
	List(ctx context.Context, search string) ([]entities.Category, error)
	Get(ctx context.Context, slug string) (entities.Category, error)
	Create(ctx context.Context, category entities.Category) error
	Delete(ctx context.Context, slug string) error
}

type GenreRepository interface {
	List(ctx context.Context, search string) ([]entities.Genre, error)
	Get(ctx context.Context, slug string) (entities.Genre, error)
	Create(ctx context.Context, genre entities.Genre) error
	Delete(ctx context.Context, slug string) error
}

// TitleFilter defines read-side filtering for the title list.
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

// TitleUpdate carries partial field changes; nil pointers leave the stored
// value untouched.
type TitleUpdate struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter) ([]entities.Title, error)
	Get(ctx context.Context, id string) (entities.Title, error)
	Create(ctx context.Context, title entities.Title) error
	Update(ctx context.Context, id string, update TitleUpdate, now time.Time) (entities.Title, error)
	Delete(ctx context.Context, id string) error
}

// RatingSource supplies the aggregate review score for a title. Implemented
// by the review module and wired in at bootstrap.
type RatingSource interface {
	AverageScore(ctx context.Context, titleID string) (float64, int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
