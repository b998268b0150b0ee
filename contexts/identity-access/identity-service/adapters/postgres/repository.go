package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ratehub/contexts/identity-access/identity-service/domain/entities"
	domainerrors "ratehub/contexts/identity-access/identity-service/domain/errors"
	"ratehub/contexts/identity-access/identity-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

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

func (r *Repository) GetOrCreate(ctx context.Context, username, email string, defaults entities.User) (entities.User, bool, error) {
	existing, found, err := r.findPair(ctx, username, email)
	if err != nil {
		return entities.User{}, false, err
	}
	if found {
		return existing, false, nil
	}
	if err := r.checkCollisions(ctx, username, email); err != nil {
		return entities.User{}, false, err
	}

	row := userModelFromEntity(defaults)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil && !isUniqueViolation(result.Error) {
		return entities.User{}, false, result.Error
	}
	if result.Error == nil && result.RowsAffected > 0 {
		return row.toEntity(), true, nil
	}

	// Lost a concurrent-registration race: the store enforced uniqueness, so
	// re-fetch and proceed rather than fail.
	existing, found, err = r.findPair(ctx, username, email)
	if err != nil {
		return entities.User{}, false, err
	}
	if found {
		return existing, false, nil
	}
	if err := r.checkCollisions(ctx, username, email); err != nil {
		return entities.User{}, false, err
	}
	return entities.User{}, false, domainerrors.ErrUsernameTaken
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(id)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]entities.User, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{})
	if filter.Search != "" {
		tx = tx.Where("username LIKE ?", "%"+filter.Search+"%")
	}

	var rows []userModel
	if err := tx.Order("username ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) Create(ctx context.Context, user entities.User) error {
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return r.collisionError(ctx, user.Username)
		}
		return err
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, username string, update ports.UserUpdate, now time.Time) (entities.User, error) {
	changes := map[string]any{"updated_at": now.UTC()}
	if update.Email != nil {
		changes["email"] = strings.TrimSpace(*update.Email)
	}
	if update.FirstName != nil {
		changes["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		changes["last_name"] = *update.LastName
	}
	if update.Bio != nil {
		changes["bio"] = *update.Bio
	}
	if update.Role != nil {
		changes["role"] = *update.Role
	}
	if update.LastLoginAt != nil {
		changes["last_login_at"] = update.LastLoginAt.UTC()
	}

	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("username = ?", strings.TrimSpace(username)).
		Updates(changes)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return entities.User{}, domainerrors.ErrEmailTaken
		}
		return entities.User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return r.GetByUsername(ctx, username)
}

func (r *Repository) Delete(ctx context.Context, username string) error {
	result := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		Delete(&userModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) findPair(ctx context.Context, username, email string) (entities.User, bool, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("username = ? AND email = ?", username, email).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, false, nil
		}
		return entities.User{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) checkCollisions(ctx context.Context, username, email string) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrUsernameTaken
	}
	if err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrEmailTaken
	}
	return nil
}

func (r *Repository) collisionError(ctx context.Context, username string) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("username = ?", username).
		Count(&count).Error; err == nil && count > 0 {
		return domainerrors.ErrUsernameTaken
	}
	return domainerrors.ErrEmailTaken
}

type userModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Username    string    `gorm:"column:username;uniqueIndex"`
	Email       string    `gorm:"column:email;uniqueIndex"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	Bio         string    `gorm:"column:bio"`
	Role        string    `gorm:"column:role"`
	Superuser   bool      `gorm:"column:superuser"`
	LastLoginAt time.Time `gorm:"column:last_login_at"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func userModelFromEntity(item entities.User) userModel {
	return userModel{
		ID:          strings.TrimSpace(item.ID),
		Username:    strings.TrimSpace(item.Username),
		Email:       strings.TrimSpace(item.Email),
		FirstName:   item.FirstName,
		LastName:    item.LastName,
		Bio:         item.Bio,
		Role:        item.Role,
		Superuser:   item.Superuser,
		LastLoginAt: item.LastLoginAt.UTC(),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		ID:          m.ID,
		Username:    m.Username,
		Email:       m.Email,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Bio:         m.Bio,
		Role:        m.Role,
		Superuser:   m.Superuser,
		LastLoginAt: m.LastLoginAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
