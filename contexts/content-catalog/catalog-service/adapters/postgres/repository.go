package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ratehub/contexts/content-catalog/catalog-service/domain/entities"
	domainerrors "ratehub/contexts/content-catalog/catalog-service/domain/errors"
	"ratehub/contexts/content-catalog/catalog-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository implements the category, genre, and title repositories over one
// gorm handle.
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

func (r *Repository) List(ctx context.Context, search string) ([]entities.Category, error) {
	tx := r.db.WithContext(ctx).Model(&categoryModel{})
	if search != "" {
		tx = tx.Where("name ILIKE ?", "%"+search+"%")
	}

	var rows []categoryModel
	if err := tx.Order("slug ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Category, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.Category{Name: row.Name, Slug: row.Slug})
	}
	return items, nil
}

func (r *Repository) Get(ctx context.Context, slug string) (entities.Category, error) {
	var row categoryModel
	err := r.db.WithContext(ctx).
		Where("slug = ?", strings.TrimSpace(slug)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Category{}, domainerrors.ErrCategoryNotFound
		}
		return entities.Category{}, err
	}
	return entities.Category{Name: row.Name, Slug: row.Slug}, nil
}

func (r *Repository) Create(ctx context.Context, category entities.Category) error {
	row := categoryModel{Name: category.Name, Slug: category.Slug}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).
		Where("slug = ?", strings.TrimSpace(slug)).
		Delete(&categoryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCategoryNotFound
	}
	return nil
}

// GenreRepository is the genre view over the same gorm handle.
type GenreRepository struct {
	repo *Repository
}

func (r *Repository) GenreView() GenreRepository { return GenreRepository{repo: r} }

func (g GenreRepository) List(ctx context.Context, search string) ([]entities.Genre, error) {
	tx := g.repo.db.WithContext(ctx).Model(&genreModel{})
	if search != "" {
		tx = tx.Where("name ILIKE ?", "%"+search+"%")
	}

	var rows []genreModel
	if err := tx.Order("slug ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Genre, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.Genre{Name: row.Name, Slug: row.Slug})
	}
	return items, nil
}

func (g GenreRepository) Get(ctx context.Context, slug string) (entities.Genre, error) {
	var row genreModel
	err := g.repo.db.WithContext(ctx).
		Where("slug = ?", strings.TrimSpace(slug)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Genre{}, domainerrors.ErrGenreNotFound
		}
		return entities.Genre{}, err
	}
	return entities.Genre{Name: row.Name, Slug: row.Slug}, nil
}

func (g GenreRepository) Create(ctx context.Context, genre entities.Genre) error {
	row := genreModel{Name: genre.Name, Slug: genre.Slug}
	if err := g.repo.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (g GenreRepository) Delete(ctx context.Context, slug string) error {
	result := g.repo.db.WithContext(ctx).
		Where("slug = ?", strings.TrimSpace(slug)).
		Delete(&genreModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrGenreNotFound
	}
	return nil
}

// TitleRepository is the title view over the same gorm handle.
type TitleRepository struct {
	repo *Repository
}

func (r *Repository) TitleView() TitleRepository { return TitleRepository{repo: r} }

func (t TitleRepository) List(ctx context.Context, filter ports.TitleFilter) ([]entities.Title, error) {
	tx := t.repo.db.WithContext(ctx).Model(&titleModel{})
	if filter.CategorySlug != "" {
		tx = tx.Where("category_slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		tx = tx.Where("? = ANY(genre_slugs)", filter.GenreSlug)
	}
	if filter.Name != "" {
		tx = tx.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		tx = tx.Where("year = ?", *filter.Year)
	}

	var rows []titleModel
	if err := tx.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Title, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (t TitleRepository) Get(ctx context.Context, id string) (entities.Title, error) {
	var row titleModel
	err := t.repo.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(id)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Title{}, domainerrors.ErrTitleNotFound
		}
		return entities.Title{}, err
	}
	return row.toEntity(), nil
}

func (t TitleRepository) Create(ctx context.Context, title entities.Title) error {
	row := titleModelFromEntity(title)
	return t.repo.db.WithContext(ctx).Create(&row).Error
}

func (t TitleRepository) Update(ctx context.Context, id string, update ports.TitleUpdate, now time.Time) (entities.Title, error) {
	changes := map[string]any{"updated_at": now.UTC()}
	if update.Name != nil {
		changes["name"] = *update.Name
	}
	if update.Year != nil {
		changes["year"] = *update.Year
	}
	if update.Description != nil {
		changes["description"] = *update.Description
	}
	if update.CategorySlug != nil {
		changes["category_slug"] = *update.CategorySlug
	}
	if update.GenreSlugs != nil {
		changes["genre_slugs"] = append([]string(nil), (*update.GenreSlugs)...)
	}

	result := t.repo.db.WithContext(ctx).
		Model(&titleModel{}).
		Where("id = ?", strings.TrimSpace(id)).
		Updates(changes)
	if result.Error != nil {
		return entities.Title{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Title{}, domainerrors.ErrTitleNotFound
	}
	return t.Get(ctx, id)
}

func (t TitleRepository) Delete(ctx context.Context, id string) error {
	result := t.repo.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(id)).
		Delete(&titleModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTitleNotFound
	}
	return nil
}

type categoryModel struct {
	Slug string `gorm:"column:slug;primaryKey"`
	Name string `gorm:"column:name"`
}

func (categoryModel) TableName() string { return "categories" }

type genreModel struct {
	Slug string `gorm:"column:slug;primaryKey"`
	Name string `gorm:"column:name"`
}

func (genreModel) TableName() string { return "genres" }

type titleModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Year         int       `gorm:"column:year"`
	Description  string    `gorm:"column:description"`
	CategorySlug string    `gorm:"column:category_slug"`
	GenreSlugs   []string  `gorm:"column:genre_slugs;type:text[]"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (titleModel) TableName() string { return "titles" }

func titleModelFromEntity(item entities.Title) titleModel {
	return titleModel{
		ID:           strings.TrimSpace(item.ID),
		Name:         strings.TrimSpace(item.Name),
		Year:         item.Year,
		Description:  item.Description,
		CategorySlug: strings.TrimSpace(item.CategorySlug),
		GenreSlugs:   append([]string(nil), item.GenreSlugs...),
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
}

func (m titleModel) toEntity() entities.Title {
	return entities.Title{
		ID:           m.ID,
		Name:         m.Name,
		Year:         m.Year,
		Description:  m.Description,
		CategorySlug: m.CategorySlug,
		GenreSlugs:   append([]string(nil), m.GenreSlugs...),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
