package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/medagenda/medagenda/internal/domain"
)

// DirectoryService serves the public listing of professionals patients
// choose from when booking.
type DirectoryService struct {
	users UserRepository
	log   *zap.Logger
}

func NewDirectoryService(users UserRepository, log *zap.Logger) *DirectoryService {
	return &DirectoryService{users: users, log: log}
}

func (s *DirectoryService) ListProfessionals(ctx context.Context) ([]*domain.PublicProfessional, error) {
	return s.users.ListPublicProfessionals(ctx)
}
