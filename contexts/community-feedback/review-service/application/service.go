package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ratehub/contexts/community-feedback/review-service/domain/entities"
	domainerrors "ratehub/contexts/community-feedback/review-service/domain/errors"
	"ratehub/contexts/community-feedback/review-service/ports"
)

const (
	minScore = 1
	maxScore = 10
)

type Service struct {
	Reviews     ports.ReviewRepository
	Comments    ports.CommentRepository
	Titles      ports.TitleChecker
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Author identifies the authenticated principal writing a review or comment.
type Author struct {
	ID       string
	Username string
}

func (s Service) ListReviews(ctx context.Context, titleID string) ([]entities.Review, error) {
	titleID = strings.TrimSpace(titleID)
	if err := s.Titles.TitleExists(ctx, titleID); err != nil {
		return nil, err
	}
	return s.Reviews.ListByTitle(ctx, titleID)
}

func (s Service) GetReview(ctx context.Context, titleID, reviewID string) (entities.Review, error) {
	titleID = strings.TrimSpace(titleID)
	if err := s.Titles.TitleExists(ctx, titleID); err != nil {
		return entities.Review{}, err
	}
	review, err := s.Reviews.Get(ctx, strings.TrimSpace(reviewID))
	if err != nil {
		return entities.Review{}, err
	}
	if review.TitleID != titleID {
		return entities.Review{}, domainerrors.ErrReviewNotFound
	}
	return review, nil
}

func (s Service) CreateReview(ctx context.Context, titleID string, author Author, text string, score int) (entities.Review, error) {
	titleID = strings.TrimSpace(titleID)
	text = strings.TrimSpace(text)
	if err := s.Titles.TitleExists(ctx, titleID); err != nil {
		return entities.Review{}, err
	}
	if text == "" {
		return entities.Review{}, domainerrors.ErrTextRequired
	}
	if score < minScore || score > maxScore {
		return entities.Review{}, domainerrors.ErrInvalidScore
	}
	if _, err := s.Reviews.GetByTitleAndAuthor(ctx, titleID, author.ID); err == nil {
		return entities.Review{}, domainerrors.ErrReviewExists
	}

	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Review{}, err
	}
	review := entities.Review{
		ID:             id,
		TitleID:        titleID,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Text:           text,
		Score:          score,
		PubDate:        s.now(),
	}
	if err := s.Reviews.Create(ctx, review); err != nil {
		return entities.Review{}, err
	}
	s.logger().Info("review created",
		"event", "review_created",
		"module", "community-feedback/review-service",
		"layer", "application",
		"title_id", titleID,
		"review_id", review.ID,
	)
	return review, nil
}

func (s Service) UpdateReview(ctx context.Context, titleID, reviewID string, update ports.ReviewUpdate) (entities.Review, error) {
	if _, err := s.GetReview(ctx, titleID, reviewID); err != nil {
		return entities.Review{}, err
	}
	if update.Text != nil {
		text := strings.TrimSpace(*update.Text)
		if text == "" {
			return entities.Review{}, domainerrors.ErrTextRequired
		}
		update.Text = &text
	}
	if update.Score != nil && (*update.Score < minScore || *update.Score > maxScore) {
		return entities.Review{}, domainerrors.ErrInvalidScore
	}
	return s.Reviews.Update(ctx, strings.TrimSpace(reviewID), update)
}

func (s Service) DeleteReview(ctx context.Context, titleID, reviewID string) error {
	if _, err := s.GetReview(ctx, titleID, reviewID); err != nil {
		return err
	}
	return s.Reviews.Delete(ctx, strings.TrimSpace(reviewID))
}

func (s Service) ListComments(ctx context.Context, titleID, reviewID string) ([]entities.Comment, error) {
	review, err := s.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return s.Comments.ListByReview(ctx, review.ID)
}

func (s Service) GetComment(ctx context.Context, titleID, reviewID, commentID string) (entities.Comment, error) {
	review, err := s.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return entities.Comment{}, err
	}
	comment, err := s.Comments.Get(ctx, strings.TrimSpace(commentID))
	if err != nil {
		return entities.Comment{}, err
	}
	if comment.ReviewID != review.ID {
		return entities.Comment{}, domainerrors.ErrCommentNotFound
	}
	return comment, nil
}

func (s Service) CreateComment(ctx context.Context, titleID, reviewID string, author Author, text string) (entities.Comment, error) {
	review, err := s.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return entities.Comment{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return entities.Comment{}, domainerrors.ErrTextRequired
	}

	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Comment{}, err
	}
	comment := entities.Comment{
		ID:             id,
		ReviewID:       review.ID,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Text:           text,
		PubDate:        s.now(),
	}
	if err := s.Comments.Create(ctx, comment); err != nil {
		return entities.Comment{}, err
	}
	return comment, nil
}

func (s Service) UpdateComment(ctx context.Context, titleID, reviewID, commentID string, update ports.CommentUpdate) (entities.Comment, error) {
	if _, err := s.GetComment(ctx, titleID, reviewID, commentID); err != nil {
		return entities.Comment{}, err
	}
	if update.Text != nil {
		text := strings.TrimSpace(*update.Text)
		if text == "" {
			return entities.Comment{}, domainerrors.ErrTextRequired
		}
		update.Text = &text
	}
	return s.Comments.Update(ctx, strings.TrimSpace(commentID), update)
}

func (s Service) DeleteComment(ctx context.Context, titleID, reviewID, commentID string) error {
	if _, err := s.GetComment(ctx, titleID, reviewID, commentID); err != nil {
		return err
	}
	return s.Comments.Delete(ctx, strings.TrimSpace(commentID))
}

// AverageScore reports the mean review score and review count for a title.
// The catalog module consumes this as its rating source.
func (s Service) AverageScore(ctx context.Context, titleID string) (float64, int, error) {
	return s.Reviews.AverageScore(ctx, strings.TrimSpace(titleID))
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
