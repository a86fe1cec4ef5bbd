package payment

import (
	"errors"
	"fmt"

	"github.com/batorigb/kinotv/internal/client/models"
)

// ErrUnknownPlan is returned for a tier/duration pair outside the price
// table.
var ErrUnknownPlan = errors.New("unknown subscription plan")

// BundleDurations are the selectable subscription lengths, in days.
var BundleDurations = []int{30, 90, 180}

// bundlePrices is the static tier×duration price table, in MNT.
var bundlePrices = map[models.Tier]map[int]int64{
	models.TierPremium: {30: 29900, 90: 79900, 180: 149900},
	models.TierSeries:  {30: 19900, 90: 52900, 180: 99900},
	models.TierMovies:  {30: 19900, 90: 52900, 180: 99900},
}

var tierNames = map[models.Tier]string{
	models.TierPremium: "Премиум багц",
	models.TierSeries:  "Цувралын багц",
	models.TierMovies:  "Киноны багц",
}

// BundlePrice looks up the price for a tier and duration.
func BundlePrice(tier models.Tier, days int) (int64, error) {
	prices, ok := bundlePrices[tier]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownPlan, tier)
	}
	price, ok := prices[days]
	if !ok {
		return 0, fmt.Errorf("%w: %s for %d days", ErrUnknownPlan, tier, days)
	}
	return price, nil
}

// BundleLabel renders the human label sent to the payment function and shown
// on the invoice.
func BundleLabel(tier models.Tier, days int) string {
	name, ok := tierNames[tier]
	if !ok {
		name = string(tier)
	}
	return fmt.Sprintf("%s (%d хоног)", name, days)
}
