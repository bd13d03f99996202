package app

import "github.com/rb3ni/FeelGoodApp/internal/domain"

// PriceList maps partner tiers to headliner ticket prices. The values
// are deployment configuration, assembled in main from the environment.
type PriceList struct {
	Tier1 float64
	Tier2 float64
	Tier3 float64
	Tier4 float64
	Tier5 float64
}

// PriceFor resolves the event price for a headliner of the given tier.
func (p PriceList) PriceFor(tier domain.PartnerTier) float64 {
	switch tier {
	case domain.PartnerTier1:
		return p.Tier1
	case domain.PartnerTier2:
		return p.Tier2
	case domain.PartnerTier3:
		return p.Tier3
	case domain.PartnerTier4:
		return p.Tier4
	case domain.PartnerTier5:
		return p.Tier5
	}
	return 0
}
