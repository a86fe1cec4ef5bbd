// Package entitlement decides whether a user may play a content item, given
// their current purchase set.
package entitlement

import "github.com/batorigb/kinotv/internal/client/models"

// Resolve reports whether the purchase set grants access to the item.
//
// Precedence, evaluated in order, short-circuiting on the first match:
//  1. a premium bundle grants everything;
//  2. a series bundle grants series items;
//  3. a movies bundle grants movie items;
//  4. a direct grant for the item's own id (legacy single-item purchases).
//
// Callers must supply only purchases already filtered to PAID and
// non-expired (PurchasesByUser does this server-side); expiry is not
// re-checked here. Because purchase state changes asynchronously, the
// decision must be recomputed on every playback attempt, never cached.
func Resolve(purchases []models.Purchase, item models.Movie) bool {
	for _, p := range purchases {
		if p.Target.IsBundle(models.TierPremium) {
			return true
		}
	}

	if item.Type == models.TypeSeries {
		for _, p := range purchases {
			if p.Target.IsBundle(models.TierSeries) {
				return true
			}
		}
	}

	if item.Type == models.TypeMovie {
		for _, p := range purchases {
			if p.Target.IsBundle(models.TierMovies) {
				return true
			}
		}
	}

	for _, p := range purchases {
		if p.Target.Kind == models.TargetContent && p.Target.ContentID == item.ID {
			return true
		}
	}

	return false
}
