package services

import (
	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"github.com/shopspring/decimal"
)

// ResolvePrice selects the tier price for the requester's role. Any role
// outside Dealer/Architect, including an empty one, gets the general price;
// the silent fallback is the intended default for unrecognized roles.
func ResolvePrice(p *domain.Product, role domain.Role) decimal.Decimal {
	switch role {
	case domain.RoleDealer:
		return p.DealerPrice
	case domain.RoleArchitect:
		return p.ArchitectPrice
	default:
		return p.GeneralPrice
	}
}

// Round2 rounds to two decimal places, half up. Applied after every
// multiplication step, not only on final sums, so totals match exactly when
// products carry fractional GST rates.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
