package commission

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultOutOfCityBonusRate is the policy default for the out-of-city bonus,
// overridable through configuration.
var DefaultOutOfCityBonusRate = decimal.NewFromFloat(0.20)

// Breakdown is the result of a commission computation.
type Breakdown struct {
	BaseFee       decimal.Decimal
	DistanceBonus decimal.Decimal
	Total         decimal.Decimal
}

// Compute calculates the delivery commission for one completed assignment.
// A delivery inside the agent's home city (case-insensitive, trimmed match)
// earns no distance bonus; anything else earns baseFee * bonusRate. A missing
// city on either side is treated as non-local, so the bonus applies.
func Compute(baseFee decimal.Decimal, deliveryCity, agentHomeCity string, bonusRate decimal.Decimal) Breakdown {
	bonus := decimal.Zero
	if !isLocal(deliveryCity, agentHomeCity) {
		bonus = baseFee.Mul(bonusRate).Round(2)
	}
	return Breakdown{
		BaseFee:       baseFee,
		DistanceBonus: bonus,
		Total:         baseFee.Add(bonus),
	}
}

// isLocal reports whether both cities are present and equal after trimming
// and case folding.
func isLocal(deliveryCity, agentHomeCity string) bool {
	d := strings.TrimSpace(deliveryCity)
	h := strings.TrimSpace(agentHomeCity)
	if d == "" || h == "" {
		return false
	}
	return strings.EqualFold(d, h)
}
