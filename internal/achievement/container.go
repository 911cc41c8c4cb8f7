package achievement

import (
	"context"

	"gorm.io/gorm"
)

type AchievementContainer struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewAchievementContainer(db *gorm.DB, stats StatsSource, perfects PerfectSource) (*AchievementContainer, error) {
	repo := NewRepository(db)
	if err := repo.EnsureCatalog(context.Background(), Catalog()); err != nil {
		return nil, err
	}

	service := NewService(repo, stats, perfects)
	handler := NewHandler(service)

	return &AchievementContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}, nil
}
