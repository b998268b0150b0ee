package ports

import (
	"context"
	"time"

	"ratehub/contexts/community-feedback/review-service/domain/entities"
)

// ReviewUpdate carries partial field changes; nil pointers leave the stored
// value untouched.
type ReviewUpdate struct {
	Text  *string
	Score *int
}

type ReviewRepository interface {
	ListByTitle(ctx context.Context, titleID string) ([]entities.Review, error)
	Get(ctx context.Context, id string) (entities.Review, error)
	GetByTitleAndAuthor(ctx context.Context, titleID, authorID string) (entities.Review, error)
	Create(ctx context.Context, review entities.Review) error
	Update(ctx context.Context, id string, update ReviewUpdate) (entities.Review, error)
	Delete(ctx context.Context, id string) error
	AverageScore(ctx context.Context, titleID string) (float64, int, error)
}

// CommentUpdate carries partial field changes for a comment.
type CommentUpdate struct {
	Text *string
}

type CommentRepository interface {
	ListByReview(ctx context.Context, reviewID string) ([]entities.Comment, error)
	Get(ctx context.Context, id string) (entities.Comment, error)
	Create(ctx context.Context, comment entities.Comment) error
	Update(ctx context.Context, id string, update CommentUpdate) (entities.Comment, error)
	Delete(ctx context.Context, id string) error
}

// TitleChecker confirms a referenced title exists. Implemented by the catalog
// module and wired in at bootstrap.
type TitleChecker interface {
	TitleExists(ctx context.Context, titleID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
