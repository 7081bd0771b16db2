package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/marketplace/commodity-api/internal/core/domain"
	"github.com/marketplace/commodity-api/internal/core/ports"
	"github.com/marketplace/commodity-api/internal/pkg/metrics"
)

type CommodityService struct {
	repo   ports.CommodityRepository
	logger zerolog.Logger
}

func NewCommodityService(repo ports.CommodityRepository, logger zerolog.Logger) *CommodityService {
	return &CommodityService{repo: repo, logger: logger}
}

func (s *CommodityService) ListAll(ctx context.Context) ([]*domain.Commodity, error) {
	return s.repo.List(ctx, ports.CommodityFilter{})
}

func (s *CommodityService) FindByBusiness(ctx context.Context, businessID string) ([]*domain.Commodity, error) {
	return s.repo.List(ctx, ports.CommodityFilter{BusinessID: businessID})
}

func (s *CommodityService) FindByCustomer(ctx context.Context, customerID string) ([]*domain.Commodity, error) {
	return s.repo.List(ctx, ports.CommodityFilter{CustomerID: customerID})
}

func (s *CommodityService) FindByTitle(ctx context.Context, title string) ([]*domain.Commodity, error) {
	return s.repo.List(ctx, ports.CommodityFilter{Title: title})
}

func (s *CommodityService) FindByID(ctx context.Context, id string) (*domain.Commodity, error) {
	return s.repo.FindByID(ctx, id)
}

// Create lists a new commodity owned by p. The role check runs before
// validation so a customer is always told it cannot create.
func (s *CommodityService) Create(ctx context.Context, p domain.Principal, in ports.CreateCommodityInput) (*domain.Commodity, error) {
	if !domain.CanCreateCommodity(p) {
		return nil, domain.ErrRoleNotPermitted
	}

	candidate := domain.CommodityCandidate{
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
	}.Normalize()
	if err := domain.ValidateCommodity(candidate); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Commodity{
		Title:       candidate.Title,
		Price:       candidate.Price,
		Description: candidate.Description,
		Business:    domain.BusinessRef{ID: p.ID},
		Customers:   []string{},
	})
	if err != nil {
		s.logger.Error().Err(err).Str("business_id", p.ID).Msg("failed to create commodity")
		return nil, err
	}

	metrics.CommodityMutationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("commodity_id", created.ID).Str("business_id", p.ID).Msg("commodity created")
	return created, nil
}

// Update applies patch when p owns the commodity.
//
// The ownership check and the write are separate round trips. The repository
// repeats the owner in its update filter, so a commodity deleted in between
// surfaces as not found rather than being resurrected.
func (s *CommodityService) Update(ctx context.Context, p domain.Principal, id string, patch domain.CommodityPatch) (*domain.Commodity, error) {
	patch = patch.Normalize()
	if err := domain.ValidateCommodityPatch(patch); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutateCommodity(p, existing) {
		s.logger.Warn().Str("commodity_id", id).Str("principal_id", p.ID).Msg("update denied: not owner")
		return nil, domain.ErrNotOwner
	}

	updated, err := s.repo.Update(ctx, id, p.ID, patch)
	if err != nil {
		return nil, err
	}

	metrics.CommodityMutationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().Str("commodity_id", id).Msg("commodity updated")
	return updated, nil
}

// Delete removes the commodity when p owns it.
func (s *CommodityService) Delete(ctx context.Context, p domain.Principal, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanDeleteCommodity(p, existing) {
		s.logger.Warn().Str("commodity_id", id).Str("principal_id", p.ID).Msg("delete denied: not owner")
		return domain.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id, p.ID); err != nil {
		return err
	}

	metrics.CommodityMutationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("commodity_id", id).Msg("commodity deleted")
	return nil
}

// Enroll appends p to the commodity's customers. Any role may enroll, and
// enrolling twice records the principal twice.
func (s *CommodityService) Enroll(ctx context.Context, p domain.Principal, id string) error {
	if err := s.repo.AppendCustomer(ctx, id, p.ID); err != nil {
		return err
	}

	metrics.EnrollmentsTotal.WithLabelValues(string(p.Role)).Inc()
	s.logger.Info().Str("commodity_id", id).Str("principal_id", p.ID).Msg("principal enrolled")
	return nil
}
