package service

import (
	"context"
	"strings"
	"time"

	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/fdalton/claimtrack/internal/repository"
	"github.com/google/uuid"
)

type estimatorService struct {
	profiles repository.EstimatorRepo
}

func NewEstimatorService(profiles repository.EstimatorRepo) EstimatorService {
	return &estimatorService{profiles: profiles}
}

func (s *estimatorService) Create(ctx context.Context, p *domain.EstimatorProfile) error {
	if strings.TrimSpace(p.DisplayName) == "" {
		return &domain.ValidationError{Field: "display name", Value: "", Reason: "must not be empty"}
	}
	if strings.TrimSpace(p.UserID) == "" {
		return &domain.ValidationError{Field: "user id", Value: "", Reason: "must not be empty"}
	}

	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Active = true
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.profiles.Create(ctx, p)
}

func (s *estimatorService) GetByID(ctx context.Context, id string) (*domain.EstimatorProfile, error) {
	return s.profiles.GetByID(ctx, id)
}

func (s *estimatorService) GetByUserID(ctx context.Context, userID string) (*domain.EstimatorProfile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *estimatorService) ListActive(ctx context.Context) ([]*domain.EstimatorProfile, error) {
	return s.profiles.ListActive(ctx)
}

func (s *estimatorService) Update(ctx context.Context, p *domain.EstimatorProfile) error {
	p.UpdatedAt = time.Now().UTC()
	return s.profiles.Update(ctx, p)
}
