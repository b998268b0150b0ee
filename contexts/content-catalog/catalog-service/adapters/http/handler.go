package httpadapter

import (
	"context"
	"log/slog"

	"ratehub/contexts/content-catalog/catalog-service/application"
	"ratehub/contexts/content-catalog/catalog-service/ports"
	httptransport "ratehub/contexts/content-catalog/catalog-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListCategoriesHandler(ctx context.Context, search string) ([]httptransport.CategoryResponse, error) {
	categories, err := h.Service.ListCategories(ctx, search)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, httptransport.CategoryResponse{Name: category.Name, Slug: category.Slug})
	}
	return items, nil
}

func (h Handler) CreateCategoryHandler(ctx context.Context, req httptransport.CreateCategoryRequest) (httptransport.CategoryResponse, error) {
	category, err := h.Service.CreateCategory(ctx, req.Name, req.Slug)
	if err != nil {
		return httptransport.CategoryResponse{}, err
	}
	return httptransport.CategoryResponse{Name: category.Name, Slug: category.Slug}, nil
}

func (h Handler) DeleteCategoryHandler(ctx context.Context, slug string) error {
	return h.Service.DeleteCategory(ctx, slug)
}

func (h Handler) ListGenresHandler(ctx context.Context, search string) ([]httptransport.GenreResponse, error) {
	genres, err := h.Service.ListGenres(ctx, search)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.GenreResponse, 0, len(genres))
	for _, genre := range genres {
		items = append(items, httptransport.GenreResponse{Name: genre.Name, Slug: genre.Slug})
	}
	return items, nil
}

func (h Handler) CreateGenreHandler(ctx context.Context, req httptransport.CreateGenreRequest) (httptransport.GenreResponse, error) {
	genre, err := h.Service.CreateGenre(ctx, req.Name, req.Slug)
	if err != nil {
		return httptransport.GenreResponse{}, err
	}
	return httptransport.GenreResponse{Name: genre.Name, Slug: genre.Slug}, nil
}

func (h Handler) DeleteGenreHandler(ctx context.Context, slug string) error {
	return h.Service.DeleteGenre(ctx, slug)
}

func (h Handler) ListTitlesHandler(ctx context.Context, filter ports.TitleFilter) ([]httptransport.TitleResponse, error) {
	views, err := h.Service.ListTitles(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.TitleResponse, 0, len(views))
	for _, view := range views {
		items = append(items, titleResponseFromView(view))
	}
	return items, nil
}

func (h Handler) GetTitleHandler(ctx context.Context, id string) (httptransport.TitleResponse, error) {
	view, err := h.Service.GetTitle(ctx, id)
	if err != nil {
		return httptransport.TitleResponse{}, err
	}
	return titleResponseFromView(view), nil
}

func (h Handler) CreateTitleHandler(ctx context.Context, req httptransport.CreateTitleRequest) (httptransport.TitleResponse, error) {
	view, err := h.Service.CreateTitle(ctx, application.CreateTitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genres,
	})
	if err != nil {
		return httptransport.TitleResponse{}, err
	}
	return titleResponseFromView(view), nil
}

func (h Handler) UpdateTitleHandler(ctx context.Context, id string, req httptransport.UpdateTitleRequest) (httptransport.TitleResponse, error) {
	view, err := h.Service.UpdateTitle(ctx, id, ports.TitleUpdate{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genres,
	})
	if err != nil {
		return httptransport.TitleResponse{}, err
	}
	return titleResponseFromView(view), nil
}

func (h Handler) DeleteTitleHandler(ctx context.Context, id string) error {
	return h.Service.DeleteTitle(ctx, id)
}

func titleResponseFromView(view application.TitleView) httptransport.TitleResponse {
	genres := make([]httptransport.GenreResponse, 0, len(view.Genres))
	for _, genre := range view.Genres {
		genres = append(genres, httptransport.GenreResponse{Name: genre.Name, Slug: genre.Slug})
	}
	return httptransport.TitleResponse{
		ID:          view.Title.ID,
		Name:        view.Title.Name,
		Year:        view.Title.Year,
		Rating:      view.Rating,
		Description: view.Title.Description,
		Category: httptransport.CategoryResponse{
			Name: view.Category.Name,
			Slug: view.Category.Slug,
		},
		Genres: genres,
	}
}
