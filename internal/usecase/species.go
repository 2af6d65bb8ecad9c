package usecase

import (
	"context"

	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/policy"
)

// SpeciesService is the reference service for species plus the filtered
// search over code, French and Latin names with the class filter.
type SpeciesService struct {
	*ReferenceService[domain.Species]

	repo SpeciesRepository
}

func NewSpeciesService(repo SpeciesRepository, cfg ReferenceConfig) *SpeciesService {
	return &SpeciesService{
		ReferenceService: NewReferenceService[domain.Species](repo, cfg),
		repo:             repo,
	}
}

// FindPaginatedSpecies returns a page of species matching the species
// filters.
func (s *SpeciesService) FindPaginatedSpecies(ctx context.Context, actor *domain.LoggedUser, params domain.SpeciesSearchParams) ([]domain.Species, error) {
	if !policy.CanRead(actor) {
		return nil, domain.ErrNotAllowed
	}
	return s.repo.SearchFiltered(ctx, params)
}

// CountSpecies counts species matching the species filters.
func (s *SpeciesService) CountSpecies(ctx context.Context, actor *domain.LoggedUser, params domain.SpeciesSearchParams) (int64, error) {
	if !policy.CanRead(actor) {
		return 0, domain.ErrNotAllowed
	}
	return s.repo.CountFiltered(ctx, params)
}
