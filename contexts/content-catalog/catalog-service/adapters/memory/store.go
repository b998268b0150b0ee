package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"ratehub/contexts/content-catalog/catalog-service/domain/entities"
	domainerrors "ratehub/contexts/content-catalog/catalog-service/domain/errors"
	"ratehub/contexts/content-catalog/catalog-service/ports"
)

// Store is the in-memory catalog repository used for development and tests.
type Store struct {
	mu sync.RWMutex

	categoriesBySlug map[string]entities.Category
	genresBySlug     map[string]entities.Genre
	titlesByID       map[string]entities.Title
	sequence         uint64
}

func NewStore() *Store {
	return &Store{
		categoriesBySlug: make(map[string]entities.Category),
		genresBySlug:     make(map[string]entities.Genre),
		titlesByID:       make(map[string]entities.Title),
	}
}

func (s *Store) List(ctx context.Context, search string) ([]entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Category, 0, len(s.categoriesBySlug))
	for _, category := range s.categoriesBySlug {
		if search != "" && !strings.Contains(strings.ToLower(category.Name), strings.ToLower(search)) {
			continue
		}
		items = append(items, category)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Slug < items[j].Slug })
	return items, nil
}

func (s *Store) Get(_ context.Context, slug string) (entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categoriesBySlug[slug]
	if !ok {
		return entities.Category{}, domainerrors.ErrCategoryNotFound
	}
	return category, nil
}

func (s *Store) Create(_ context.Context, category entities.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categoriesBySlug[category.Slug]; ok {
		return domainerrors.ErrSlugTaken
	}
	s.categoriesBySlug[category.Slug] = category
	return nil
}

func (s *Store) Delete(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categoriesBySlug[slug]; !ok {
		return domainerrors.ErrCategoryNotFound
	}
	delete(s.categoriesBySlug, slug)
	return nil
}

// GenreStore exposes the genre side of the shared in-memory store. Genres and
// categories have identical shapes, so the genre repository is a narrow view
// over the same mutex.
type GenreStore struct {
	store *Store
}

func (s *Store) GenreView() GenreStore { return GenreStore{store: s} }

func (g GenreStore) List(_ context.Context, search string) ([]entities.Genre, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	items := make([]entities.Genre, 0, len(g.store.genresBySlug))
	for _, genre := range g.store.genresBySlug {
		if search != "" && !strings.Contains(strings.ToLower(genre.Name), strings.ToLower(search)) {
			continue
		}
		items = append(items, genre)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Slug < items[j].Slug })
	return items, nil
}

func (g GenreStore) Get(_ context.Context, slug string) (entities.Genre, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	genre, ok := g.store.genresBySlug[slug]
	if !ok {
		return entities.Genre{}, domainerrors.ErrGenreNotFound
	}
	return genre, nil
}

func (g GenreStore) Create(_ context.Context, genre entities.Genre) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()

	if _, ok := g.store.genresBySlug[genre.Slug]; ok {
		return domainerrors.ErrSlugTaken
	}
	g.store.genresBySlug[genre.Slug] = genre
	return nil
}

func (g GenreStore) Delete(_ context.Context, slug string) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()

	if _, ok := g.store.genresBySlug[slug]; !ok {
		return domainerrors.ErrGenreNotFound
	}
	delete(g.store.genresBySlug, slug)
	return nil
}

// TitleStore exposes the title side of the shared in-memory store.
type TitleStore struct {
	store *Store
}

func (s *Store) TitleView() TitleStore { return TitleStore{store: s} }

func (t TitleStore) List(_ context.Context, filter ports.TitleFilter) ([]entities.Title, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	items := make([]entities.Title, 0, len(t.store.titlesByID))
	for _, title := range t.store.titlesByID {
		if filter.CategorySlug != "" && title.CategorySlug != filter.CategorySlug {
			continue
		}
		if filter.GenreSlug != "" && !containsSlug(title.GenreSlugs, filter.GenreSlug) {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(title.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Year != nil && title.Year != *filter.Year {
			continue
		}
		items = append(items, title)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (t TitleStore) Get(_ context.Context, id string) (entities.Title, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	title, ok := t.store.titlesByID[id]
	if !ok {
		return entities.Title{}, domainerrors.ErrTitleNotFound
	}
	return title, nil
}

func (t TitleStore) Create(_ context.Context, title entities.Title) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	t.store.titlesByID[title.ID] = title
	return nil
}

func (t TitleStore) Update(_ context.Context, id string, update ports.TitleUpdate, now time.Time) (entities.Title, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	title, ok := t.store.titlesByID[id]
	if !ok {
		return entities.Title{}, domainerrors.ErrTitleNotFound
	}
	if update.Name != nil {
		title.Name = *update.Name
	}
	if update.Year != nil {
		title.Year = *update.Year
	}
	if update.Description != nil {
		title.Description = *update.Description
	}
	if update.CategorySlug != nil {
		title.CategorySlug = *update.CategorySlug
	}
	if update.GenreSlugs != nil {
		title.GenreSlugs = append([]string(nil), (*update.GenreSlugs)...)
	}
	title.UpdatedAt = now.UTC()
	t.store.titlesByID[id] = title
	return title, nil
}

func (t TitleStore) Delete(_ context.Context, id string) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if _, ok := t.store.titlesByID[id]; !ok {
		return domainerrors.ErrTitleNotFound
	}
	delete(t.store.titlesByID, id)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("title_%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func containsSlug(slugs []string, target string) bool {
	for _, slug := range slugs {
		if slug == target {
			return true
		}
	}
	return false
}
