package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	reviewpostgres "ratehub/contexts/community-feedback/review-service/adapters/postgres"
	reviewentities "ratehub/contexts/community-feedback/review-service/domain/entities"
	catalogpostgres "ratehub/contexts/content-catalog/catalog-service/adapters/postgres"
	catalogentities "ratehub/contexts/content-catalog/catalog-service/domain/entities"
	identitypostgres "ratehub/contexts/identity-access/identity-service/adapters/postgres"
	identityentities "ratehub/contexts/identity-access/identity-service/domain/entities"
	"ratehub/internal/platform/db"
)

// Seed process entrypoint: imports catalog, identity, review, and comment
// fixtures from a directory of CSV files. Files reference each other by
// numeric id, so load order matters; ids are carried over verbatim.
func main() {
	dataDir := flag.String("data", "data", "directory containing the CSV fixtures")
	flag.Parse()

	logger := slog.Default().With("service", "ratehub", "process", "seed")

	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		logger.Error("seed failed", "event", "seed_failed", "error", "POSTGRES_DSN is required")
		os.Exit(1)
	}

	pg, err := db.Connect(dsn)
	if err != nil {
		logger.Error("seed failed", "event", "seed_failed", "error", err.Error())
		os.Exit(1)
	}
	defer func() { _ = pg.Close() }()

	loader := loader{
		dir:      *dataDir,
		catalog:  catalogpostgres.NewRepository(pg.DB, logger),
		identity: identitypostgres.NewRepository(pg.DB, logger),
		review:   reviewpostgres.NewRepository(pg.DB, logger),
		logger:   logger,
	}
	if err := loader.Run(context.Background()); err != nil {
		logger.Error("seed failed", "event", "seed_failed", "error", err.Error())
		os.Exit(1)
	}
	logger.Info("seed completed", "event", "seed_completed")
}

type loader struct {
	dir      string
	catalog  *catalogpostgres.Repository
	identity *identitypostgres.Repository
	review   *reviewpostgres.Repository
	logger   *slog.Logger

	categorySlugByID  map[string]string
	genreSlugByID     map[string]string
	genreSlugsByTitle map[string][]string
	usernameByID      map[string]string
}

func (l *loader) Run(ctx context.Context) error {
	l.categorySlugByID = make(map[string]string)
	l.genreSlugByID = make(map[string]string)
	l.genreSlugsByTitle = make(map[string][]string)
	l.usernameByID = make(map[string]string)

	steps := []struct {
		file string
		load func(context.Context, []map[string]string) error
	}{
		{"category.csv", l.loadCategories},
		{"genre.csv", l.loadGenres},
		{"genre_title.csv", l.loadGenreLinks},
		{"titles.csv", l.loadTitles},
		{"users.csv", l.loadUsers},
		{"review.csv", l.loadReviews},
		{"comments.csv", l.loadComments},
	}
	for _, step := range steps {
		rows, err := readCSV(filepath.Join(l.dir, step.file))
		if err != nil {
			return fmt.Errorf("%s: %w", step.file, err)
		}
		if err := step.load(ctx, rows); err != nil {
			return fmt.Errorf("%s: %w", step.file, err)
		}
		l.logger.Info("fixture loaded",
			"event", "seed_fixture_loaded",
			"file", step.file,
			"rows", len(rows),
		)
	}
	return nil
}

func (l *loader) loadCategories(ctx context.Context, rows []map[string]string) error {
	for _, row := range rows {
		l.categorySlugByID[row["id"]] = row["slug"]
		if err := l.catalog.Create(ctx, catalogentities.Category{
			Name: row["name"],
			Slug: row["slug"],
		}); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) loadGenres(ctx context.Context, rows []map[string]string) error {
	genres := l.catalog.GenreView()
	for _, row := range rows {
		l.genreSlugByID[row["id"]] = row["slug"]
		if err := genres.Create(ctx, catalogentities.Genre{
			Name: row["name"],
			Slug: row["slug"],
		}); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) loadGenreLinks(_ context.Context, rows []map[string]string) error {
	for _, row := range rows {
		slug, ok := l.genreSlugByID[row["genre_id"]]
		if !ok {
			return fmt.Errorf("genre id %s is not defined", row["genre_id"])
		}
		titleID := row["title_id"]
		l.genreSlugsByTitle[titleID] = append(l.genreSlugsByTitle[titleID], slug)
	}
	return nil
}

func (l *loader) loadTitles(ctx context.Context, rows []map[string]string) error {
	titles := l.catalog.TitleView()
	now := time.Now().UTC()
	for _, row := range rows {
		year, err := atoiField(row, "year")
		if err != nil {
			return err
		}
		if err := titles.Create(ctx, catalogentities.Title{
			ID:           row["id"],
			Name:         row["name"],
			Year:         year,
			CategorySlug: l.categorySlugByID[row["category"]],
			GenreSlugs:   l.genreSlugsByTitle[row["id"]],
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) loadUsers(ctx context.Context, rows []map[string]string) error {
	now := time.Now().UTC()
	for _, row := range rows {
		l.usernameByID[row["id"]] = row["username"]
		role := row["role"]
		if role == "" {
			role = identityentities.RoleUser
		}
		if err := l.identity.Create(ctx, identityentities.User{
			ID:        row["id"],
			Username:  row["username"],
			Email:     row["email"],
			FirstName: row["first_name"],
			LastName:  row["last_name"],
			Bio:       row["bio"],
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) loadReviews(ctx context.Context, rows []map[string]string) error {
	for _, row := range rows {
		score, err := atoiField(row, "score")
		if err != nil {
			return err
		}
		pubDate, err := parseDate(row["pub_date"])
		if err != nil {
			return err
		}
		if err := l.review.Create(ctx, reviewentities.Review{
			ID:             row["id"],
			TitleID:        row["title_id"],
			AuthorID:       row["author"],
			AuthorUsername: l.usernameByID[row["author"]],
			Text:           row["text"],
			Score:          score,
			PubDate:        pubDate,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) loadComments(ctx context.Context, rows []map[string]string) error {
	comments := l.review.CommentView()
	for _, row := range rows {
		pubDate, err := parseDate(row["pub_date"])
		if err != nil {
			return err
		}
		if err := comments.Create(ctx, reviewentities.Comment{
			ID:             row["id"],
			ReviewID:       row["review_id"],
			AuthorID:       row["author"],
			AuthorUsername: l.usernameByID[row["author"]],
			Text:           row["text"],
			PubDate:        pubDate,
		}); err != nil {
			return err
		}
	}
	return nil
}

// readCSV returns each data row keyed by the header names.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("file has no header row")
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[strings.TrimSpace(name)] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func atoiField(row map[string]string, name string) (int, error) {
	var value int
	if _, err := fmt.Sscanf(strings.TrimSpace(row[name]), "%d", &value); err != nil {
		return 0, fmt.Errorf("column %s: %q is not an integer", name, row[name])
	}
	return value, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a recognized timestamp", raw)
}
