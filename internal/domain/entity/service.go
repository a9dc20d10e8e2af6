package entity

import (
	"time"

	"github.com/google/uuid"
)

// PricingMode tags how a catalog service is priced. A fixed service never
// has tiers read off it and a tiered service never exposes a fixed price.
type PricingMode string

const (
	PricingModeFixed  PricingMode = "fixed"
	PricingModeTiered PricingMode = "tiered"
)

// Service is a catalog entry a customer can book, e.g. "Full Service" or
// "MOT". Fixed services price every vehicle the same; tiered services price
// by engine tier.
type Service struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string      `gorm:"type:varchar(255);not null" json:"name"`
	PricingMode     PricingMode `gorm:"type:pricing_mode;not null" json:"pricing_mode"`
	FixedPricePence *int64      `json:"fixed_price_pence,omitempty"`
	VatRatePercent  *int        `json:"vat_rate_percent,omitempty"`
	IsActive        bool        `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Tiers []EngineTier `gorm:"foreignKey:ServiceID" json:"tiers,omitempty"`
}

func (Service) TableName() string {
	return "services"
}

// IsFixed checks if the service uses fixed pricing
func (s *Service) IsFixed() bool {
	return s.PricingMode == PricingModeFixed
}

// EngineTier is one pricing band of a tiered service. Tiers are ordered by
// ascending MaxCc; a nil MaxCc means no upper bound and matches anything
// larger than every bounded tier.
type EngineTier struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ServiceID  uuid.UUID `gorm:"type:uuid;not null;index" json:"service_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	MaxCc      *int      `json:"max_cc,omitempty"`
	PricePence int64     `gorm:"not null" json:"price_pence"`
}

func (EngineTier) TableName() string {
	return "engine_tiers"
}

// Matches reports whether an engine of the given size falls into this tier
func (t *EngineTier) Matches(engineCc int) bool {
	return t.MaxCc == nil || engineCc <= *t.MaxCc
}

// MatchTier returns the smallest tier whose bound covers the engine size.
// Tiers must be sorted by ascending MaxCc with the unbounded tier last.
func MatchTier(tiers []EngineTier, engineCc int) *EngineTier {
	for i := range tiers {
		if tiers[i].Matches(engineCc) {
			return &tiers[i]
		}
	}
	return nil
}
