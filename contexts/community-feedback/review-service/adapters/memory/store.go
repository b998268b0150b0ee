package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"ratehub/contexts/community-feedback/review-service/domain/entities"
	domainerrors "ratehub/contexts/community-feedback/review-service/domain/errors"
	"ratehub/contexts/community-feedback/review-service/ports"
)

// Store is the in-memory review and comment repository used for development
// and tests.
type Store struct {
	mu sync.RWMutex

	reviewsByID  map[string]entities.Review
	commentsByID map[string]entities.Comment
	sequence     uint64
}

func NewStore() *Store {
	return &Store{
		reviewsByID:  make(map[string]entities.Review),
		commentsByID: make(map[string]entities.Comment),
	}
}

func (s *Store) ListByTitle(_ context.Context, titleID string) ([]entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Review, 0)
	for _, review := range s.reviewsByID {
		if review.TitleID == titleID {
			items = append(items, review)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PubDate.Before(items[j].PubDate) })
	return items, nil
}

func (s *Store) Get(_ context.Context, id string) (entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviewsByID[id]
	if !ok {
		return entities.Review{}, domainerrors.ErrReviewNotFound
	}
	return review, nil
}

func (s *Store) GetByTitleAndAuthor(_ context.Context, titleID, authorID string) (entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, review := range s.reviewsByID {
		if review.TitleID == titleID && review.AuthorID == authorID {
			return review, nil
		}
	}
	return entities.Review{}, domainerrors.ErrReviewNotFound
}

func (s *Store) Create(_ context.Context, review entities.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.reviewsByID {
		if existing.TitleID == review.TitleID && existing.AuthorID == review.AuthorID {
			return domainerrors.ErrReviewExists
		}
	}
	s.reviewsByID[review.ID] = review
	return nil
}

func (s *Store) Update(_ context.Context, id string, update ports.ReviewUpdate) (entities.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviewsByID[id]
	if !ok {
		return entities.Review{}, domainerrors.ErrReviewNotFound
	}
	if update.Text != nil {
		review.Text = *update.Text
	}
	if update.Score != nil {
		review.Score = *update.Score
	}
	s.reviewsByID[id] = review
	return review, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviewsByID[id]; !ok {
		return domainerrors.ErrReviewNotFound
	}
	delete(s.reviewsByID, id)
	for commentID, comment := range s.commentsByID {
		if comment.ReviewID == id {
			delete(s.commentsByID, commentID)
		}
	}
	return nil
}

func (s *Store) AverageScore(_ context.Context, titleID string) (float64, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum, count := 0, 0
	for _, review := range s.reviewsByID {
		if review.TitleID == titleID {
			sum += review.Score
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

// CommentStore exposes the comment side of the shared in-memory store.
type CommentStore struct {
	store *Store
}

func (s *Store) CommentView() CommentStore { return CommentStore{store: s} }

func (c CommentStore) ListByReview(_ context.Context, reviewID string) ([]entities.Comment, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	items := make([]entities.Comment, 0)
	for _, comment := range c.store.commentsByID {
		if comment.ReviewID == reviewID {
			items = append(items, comment)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PubDate.Before(items[j].PubDate) })
	return items, nil
}

func (c CommentStore) Get(_ context.Context, id string) (entities.Comment, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	comment, ok := c.store.commentsByID[id]
	if !ok {
		return entities.Comment{}, domainerrors.ErrCommentNotFound
	}
	return comment, nil
}

func (c CommentStore) Create(_ context.Context, comment entities.Comment) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	c.store.commentsByID[comment.ID] = comment
	return nil
}

func (c CommentStore) Update(_ context.Context, id string, update ports.CommentUpdate) (entities.Comment, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	comment, ok := c.store.commentsByID[id]
	if !ok {
		return entities.Comment{}, domainerrors.ErrCommentNotFound
	}
	if update.Text != nil {
		comment.Text = *update.Text
	}
	c.store.commentsByID[id] = comment
	return comment, nil
}

func (c CommentStore) Delete(_ context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if _, ok := c.store.commentsByID[id]; !ok {
		return domainerrors.ErrCommentNotFound
	}
	delete(c.store.commentsByID, id)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("review_%d", atomic.AddUint64(&s.sequence, 1)), nil
}
