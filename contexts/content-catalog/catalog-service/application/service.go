package application

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"ratehub/contexts/content-catalog/catalog-service/domain/entities"
	domainerrors "ratehub/contexts/content-catalog/catalog-service/domain/errors"
	"ratehub/contexts/content-catalog/catalog-service/ports"
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

type Service struct {
	Categories  ports.CategoryRepository
	Genres      ports.GenreRepository
	Titles      ports.TitleRepository
	Ratings     ports.RatingSource
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// TitleView is a title joined with its referenced catalog records and the
// aggregate review rating (nil when the title has no reviews).
type TitleView struct {
	Title    entities.Title
	Category entities.Category
	Genres   []entities.Genre
	Rating   *int
}

// CreateTitleInput is the admin-facing title creation payload.
type CreateTitleInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

func (s Service) ListCategories(ctx context.Context, search string) ([]entities.Category, error) {
	return s.Categories.List(ctx, strings.TrimSpace(search))
}

func (s Service) CreateCategory(ctx context.Context, name, slug string) (entities.Category, error) {
	category := entities.Category{
		Name: strings.TrimSpace(name),
		Slug: strings.TrimSpace(slug),
	}
	if category.Name == "" {
		return entities.Category{}, domainerrors.ErrNameRequired
	}
	if !slugPattern.MatchString(category.Slug) {
		return entities.Category{}, domainerrors.ErrInvalidSlug
	}
	if err := s.Categories.Create(ctx, category); err != nil {
		return entities.Category{}, err
	}
	return category, nil
}

func (s Service) DeleteCategory(ctx context.Context, slug string) error {
	return s.Categories.Delete(ctx, strings.TrimSpace(slug))
}

func (s Service) ListGenres(ctx context.Context, search string) ([]entities.Genre, error) {
	return s.Genres.List(ctx, strings.TrimSpace(search))
}

func (s Service) CreateGenre(ctx context.Context, name, slug string) (entities.Genre, error) {
	genre := entities.Genre{
		Name: strings.TrimSpace(name),
		Slug: strings.TrimSpace(slug),
	}
	if genre.Name == "" {
		return entities.Genre{}, domainerrors.ErrNameRequired
	}
	if !slugPattern.MatchString(genre.Slug) {
		return entities.Genre{}, domainerrors.ErrInvalidSlug
	}
	if err := s.Genres.Create(ctx, genre); err != nil {
		return entities.Genre{}, err
	}
	return genre, nil
}

func (s Service) DeleteGenre(ctx context.Context, slug string) error {
	return s.Genres.Delete(ctx, strings.TrimSpace(slug))
}

func (s Service) ListTitles(ctx context.Context, filter ports.TitleFilter) ([]TitleView, error) {
	filter.CategorySlug = strings.TrimSpace(filter.CategorySlug)
	filter.GenreSlug = strings.TrimSpace(filter.GenreSlug)
	filter.Name = strings.TrimSpace(filter.Name)

	titles, err := s.Titles.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]TitleView, 0, len(titles))
	for _, title := range titles {
		view, err := s.composeView(ctx, title)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s Service) GetTitle(ctx context.Context, id string) (TitleView, error) {
	title, err := s.Titles.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return TitleView{}, err
	}
	return s.composeView(ctx, title)
}

func (s Service) CreateTitle(ctx context.Context, input CreateTitleInput) (TitleView, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.CategorySlug = strings.TrimSpace(input.CategorySlug)
	if input.Name == "" {
		return TitleView{}, domainerrors.ErrNameRequired
	}
	if err := s.validateYear(input.Year); err != nil {
		return TitleView{}, err
	}
	if err := s.validateReferences(ctx, input.CategorySlug, input.GenreSlugs); err != nil {
		return TitleView{}, err
	}

	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return TitleView{}, err
	}
	now := s.now()
	title := entities.Title{
		ID:           id,
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.CategorySlug,
		GenreSlugs:   trimSlugs(input.GenreSlugs),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Titles.Create(ctx, title); err != nil {
		return TitleView{}, err
	}
	return s.composeView(ctx, title)
}

func (s Service) UpdateTitle(ctx context.Context, id string, update ports.TitleUpdate) (TitleView, error) {
	if update.Year != nil {
		if err := s.validateYear(*update.Year); err != nil {
			return TitleView{}, err
		}
	}
	categorySlug := ""
	if update.CategorySlug != nil {
		categorySlug = strings.TrimSpace(*update.CategorySlug)
		update.CategorySlug = &categorySlug
	}
	var genreSlugs []string
	if update.GenreSlugs != nil {
		genreSlugs = trimSlugs(*update.GenreSlugs)
		update.GenreSlugs = &genreSlugs
	}
	if err := s.validateReferences(ctx, categorySlug, genreSlugs); err != nil {
		return TitleView{}, err
	}

	title, err := s.Titles.Update(ctx, strings.TrimSpace(id), update, s.now())
	if err != nil {
		return TitleView{}, err
	}
	return s.composeView(ctx, title)
}

func (s Service) DeleteTitle(ctx context.Context, id string) error {
	return s.Titles.Delete(ctx, strings.TrimSpace(id))
}

func (s Service) composeView(ctx context.Context, title entities.Title) (TitleView, error) {
	view := TitleView{Title: title}

	if title.CategorySlug != "" {
		category, err := s.Categories.Get(ctx, title.CategorySlug)
		if err == nil {
			view.Category = category
		}
	}
	for _, slug := range title.GenreSlugs {
		genre, err := s.Genres.Get(ctx, slug)
		if err == nil {
			view.Genres = append(view.Genres, genre)
		}
	}

	if s.Ratings != nil {
		average, count, err := s.Ratings.AverageScore(ctx, title.ID)
		if err != nil {
			return TitleView{}, err
		}
		if count > 0 {
			rating := int(math.Round(average))
			view.Rating = &rating
		}
	}
	return view, nil
}

func (s Service) validateYear(year int) error {
	if year < 0 || year > s.now().Year() {
		return domainerrors.ErrInvalidYear
	}
	return nil
}

func (s Service) validateReferences(ctx context.Context, categorySlug string, genreSlugs []string) error {
	if categorySlug != "" {
		if _, err := s.Categories.Get(ctx, categorySlug); err != nil {
			return domainerrors.ErrUnknownCategory
		}
	}
	for _, slug := range genreSlugs {
		if _, err := s.Genres.Get(ctx, slug); err != nil {
			return domainerrors.ErrUnknownGenre
		}
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func trimSlugs(slugs []string) []string {
	items := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		slug = strings.TrimSpace(slug)
		if slug != "" {
			items = append(items, slug)
		}
	}
	return items
}
