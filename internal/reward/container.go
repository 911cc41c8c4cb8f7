package reward

import "gorm.io/gorm"

type RewardContainer struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewRewardContainer(db *gorm.DB) *RewardContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &RewardContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
