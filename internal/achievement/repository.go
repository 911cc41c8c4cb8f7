package achievement

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	EnsureCatalog(ctx context.Context, entries []CatalogEntry) error
	List(ctx context.Context) ([]Achievement, error)
	// Unlock inserts the (user, achievement) row, reporting whether it was
	// newly created. The unique constraint makes this safe under concurrency.
	Unlock(ctx context.Context, userID, achievementID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]UserAchievement, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) EnsureCatalog(ctx context.Context, entries []CatalogEntry) error {
	for _, e := range entries {
		row := Achievement{
			ID:          uuid.New(),
			Code:        e.Code,
			Name:        e.Name,
			Description: e.Description,
			Icon:        e.Icon,
		}
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *gormRepository) List(ctx context.Context) ([]Achievement, error) {
	var rows []Achievement
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) Unlock(ctx context.Context, userID, achievementID uuid.UUID) (bool, error) {
	row := UserAchievement{
		ID:            uuid.New(),
		UserID:        userID,
		AchievementID: achievementID,
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoNothing: true,
	}).Create(&row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]UserAchievement, error) {
	var rows []UserAchievement
	if err := r.db.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
