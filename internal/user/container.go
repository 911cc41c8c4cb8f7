package user

import "gorm.io/gorm"

type UserContainer struct {
	Handler *Handler
	Service Service
	Repo    UserRepository
}

func NewUserContainer(db *gorm.DB, granter InitialGranter) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, granter)
	handler := NewHandler(service)

	return &UserContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
