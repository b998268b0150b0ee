package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ratehub/contexts/community-feedback/review-service/domain/entities"
	domainerrors "ratehub/contexts/community-feedback/review-service/domain/errors"
	"ratehub/contexts/community-feedback/review-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository implements the review and comment repositories over one gorm
// handle.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) ListByTitle(ctx context.Context, titleID string) ([]entities.Review, error) {
	var rows []reviewModel
	err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Order("pub_date ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Review, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) Get(ctx context.Context, id string) (entities.Review, error) {
	var row reviewModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(id)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Review{}, domainerrors.ErrReviewNotFound
		}
		return entities.Review{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetByTitleAndAuthor(ctx context.Context, titleID, authorID string) (entities.Review, error) {
	var row reviewModel
	err := r.db.WithContext(ctx).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Review{}, domainerrors.ErrReviewNotFound
		}
		return entities.Review{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) Create(ctx context.Context, review entities.Review) error {
	row := reviewModelFromEntity(review)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrReviewExists
		}
		return err
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, id string, update ports.ReviewUpdate) (entities.Review, error) {
	changes := map[string]any{}
	if update.Text != nil {
		changes["text"] = *update.Text
	}
	if update.Score != nil {
		changes["score"] = *update.Score
	}
	if len(changes) > 0 {
		result := r.db.WithContext(ctx).
			Model(&reviewModel{}).
			Where("id = ?", strings.TrimSpace(id)).
			Updates(changes)
		if result.Error != nil {
			return entities.Review{}, result.Error
		}
		if result.RowsAffected == 0 {
			return entities.Review{}, domainerrors.ErrReviewNotFound
		}
	}
	return r.Get(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&reviewModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrReviewNotFound
		}
		return tx.Where("review_id = ?", id).Delete(&commentModel{}).Error
	})
}

func (r *Repository) AverageScore(ctx context.Context, titleID string) (float64, int, error) {
	var result struct {
		Average float64
		Count   int
	}
	err := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
		Where("title_id = ?", titleID).
		Scan(&result).
		Error
	if err != nil {
		return 0, 0, err
	}
	return result.Average, result.Count, nil
}

// CommentRepository is the comment view over the same gorm handle.
type CommentRepository struct {
	repo *Repository
}

func (r *Repository) CommentView() CommentRepository { return CommentRepository{repo: r} }

func (c CommentRepository) ListByReview(ctx context.Context, reviewID string) ([]entities.Comment, error) {
	var rows []commentModel
	err := c.repo.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("pub_date ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Comment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (c CommentRepository) Get(ctx context.Context, id string) (entities.Comment, error) {
	var row commentModel
	err := c.repo.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(id)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Comment{}, domainerrors.ErrCommentNotFound
		}
		return entities.Comment{}, err
	}
	return row.toEntity(), nil
}

func (c CommentRepository) Create(ctx context.Context, comment entities.Comment) error {
	row := commentModelFromEntity(comment)
	return c.repo.db.WithContext(ctx).Create(&row).Error
}

func (c CommentRepository) Update(ctx context.Context, id string, update ports.CommentUpdate) (entities.Comment, error) {
	if update.Text != nil {
		result := c.repo.db.WithContext(ctx).
			Model(&commentModel{}).
			Where("id = ?", strings.TrimSpace(id)).
			Update("text", *update.Text)
		if result.Error != nil {
			return entities.Comment{}, result.Error
		}
		if result.RowsAffected == 0 {
			return entities.Comment{}, domainerrors.ErrCommentNotFound
		}
	}
	return c.Get(ctx, id)
}

func (c CommentRepository) Delete(ctx context.Context, id string) error {
	result := c.repo.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(id)).
		Delete(&commentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCommentNotFound
	}
	return nil
}

type reviewModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	TitleID        string    `gorm:"column:title_id;uniqueIndex:idx_reviews_title_author"`
	AuthorID       string    `gorm:"column:author_id;uniqueIndex:idx_reviews_title_author"`
	AuthorUsername string    `gorm:"column:author_username"`
	Text           string    `gorm:"column:text"`
	Score          int       `gorm:"column:score"`
	PubDate        time.Time `gorm:"column:pub_date"`
}

func (reviewModel) TableName() string { return "reviews" }

func reviewModelFromEntity(item entities.Review) reviewModel {
	return reviewModel{
		ID:             item.ID,
		TitleID:        item.TitleID,
		AuthorID:       item.AuthorID,
		AuthorUsername: item.AuthorUsername,
		Text:           item.Text,
		Score:          item.Score,
		PubDate:        item.PubDate.UTC(),
	}
}

func (m reviewModel) toEntity() entities.Review {
	return entities.Review{
		ID:             m.ID,
		TitleID:        m.TitleID,
		AuthorID:       m.AuthorID,
		AuthorUsername: m.AuthorUsername,
		Text:           m.Text,
		Score:          m.Score,
		PubDate:        m.PubDate,
	}
}

type commentModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	ReviewID       string    `gorm:"column:review_id;index"`
	AuthorID       string    `gorm:"column:author_id"`
	AuthorUsername string    `gorm:"column:author_username"`
	Text           string    `gorm:"column:text"`
	PubDate        time.Time `gorm:"column:pub_date"`
}

func (commentModel) TableName() string { return "comments" }

func commentModelFromEntity(item entities.Comment) commentModel {
	return commentModel{
		ID:             item.ID,
		ReviewID:       item.ReviewID,
		AuthorID:       item.AuthorID,
		AuthorUsername: item.AuthorUsername,
		Text:           item.Text,
		PubDate:        item.PubDate.UTC(),
	}
}

func (m commentModel) toEntity() entities.Comment {
	return entities.Comment{
		ID:             m.ID,
		ReviewID:       m.ReviewID,
		AuthorID:       m.AuthorID,
		AuthorUsername: m.AuthorUsername,
		Text:           m.Text,
		PubDate:        m.PubDate,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
