package service

import (
	"github.com/deppfellow/agenthq/internal/repository"
	"github.com/deppfellow/agenthq/internal/server"
)

type Services struct {
	Items *ItemService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Items: NewItemService(repos.Items),
	}
}
