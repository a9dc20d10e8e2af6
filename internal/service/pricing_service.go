package service

import (
	"context"
	"errors"

	"garage-booking-service/internal/domain/entity"
	"garage-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrServiceNotFound is returned when the catalog service does not exist
	ErrServiceNotFound = errors.New("service not found")

	// ErrPriceNotFound is returned when no price row matches. Confirmation
	// must be blocked on this error; it never silently defaults to zero.
	ErrPriceNotFound = errors.New("no price found for service and engine")
)

// ResolvedPrice is the outcome of price resolution for one service line
type ResolvedPrice struct {
	Service    *entity.Service
	Tier       *entity.EngineTier // nil for fixed-priced services
	PricePence int64
}

// PricingService maps (service, engine tier or engine size) to a price in
// pence. Fixed services price every vehicle the same; tiered services match
// the smallest tier whose max_cc covers the engine size.
type PricingService struct {
	db          *gorm.DB
	log         *logrus.Logger
	catalogRepo repository.CatalogRepository
}

func NewPricingService(db *gorm.DB, log *logrus.Logger, catalogRepo repository.CatalogRepository) *PricingService {
	return &PricingService{
		db:          db,
		log:         log,
		catalogRepo: catalogRepo,
	}
}

// ResolvePrice resolves the unit price for a service line. For tiered
// services either an explicit tier id or an engine size must be supplied;
// with only a size, the size-to-tier mapping is computed first.
func (s *PricingService) ResolvePrice(ctx context.Context, serviceID uuid.UUID, tierID *uuid.UUID, engineCc *int) (*ResolvedPrice, error) {
	svc, err := s.catalogRepo.FindServiceByID(s.db.WithContext(ctx), serviceID)
	if err != nil {
		s.log.Warnf("Failed to find service %s: %+v", serviceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	if svc.IsFixed() {
		if svc.FixedPricePence == nil {
			s.log.Errorf("Fixed service %s has no price configured", serviceID)
			return nil, ErrPriceNotFound
		}
		return &ResolvedPrice{Service: svc, PricePence: *svc.FixedPricePence}, nil
	}

	// Tiered pricing: explicit tier wins over engine size
	if tierID != nil {
		for i := range svc.Tiers {
			if svc.Tiers[i].ID == *tierID {
				tier := &svc.Tiers[i]
				return &ResolvedPrice{Service: svc, Tier: tier, PricePence: tier.PricePence}, nil
			}
		}
		return nil, ErrPriceNotFound
	}

	if engineCc == nil {
		return nil, ErrPriceNotFound
	}

	tier := entity.MatchTier(svc.Tiers, *engineCc)
	if tier == nil {
		return nil, ErrPriceNotFound
	}

	return &ResolvedPrice{Service: svc, Tier: tier, PricePence: tier.PricePence}, nil
}
