package models

import "time"

// Tier identifies a subscription bundle granting blanket access to a content
// type. The string values are the sentinel ids used on the wire in the
// purchase document's movieId attribute.
type Tier string

const (
	TierPremium Tier = "ALL_ACCESS_PREMIUM"
	TierSeries  Tier = "ALL_ACCESS_SERIES"
	TierMovies  Tier = "ALL_ACCESS_MOVIES"

	// legacyTierAll predates the premium/series/movies split and granted
	// everything; parsed as TierPremium.
	legacyTierAll = "ALL_ACCESS_SUBSCRIPTION"
)

// TargetKind tags the two variants of a purchase target.
type TargetKind int

const (
	TargetContent TargetKind = iota
	TargetBundle
)

// Target is what a purchase grants access to: either a single content item or
// a subscription bundle. It replaces the backend's overloaded movieId string,
// which doubles as a content id and a bundle sentinel.
type Target struct {
	Kind      TargetKind
	ContentID string // set when Kind == TargetContent
	Tier      Tier   // set when Kind == TargetBundle
}

// ContentTarget builds a target for a single content item.
func ContentTarget(id string) Target {
	return Target{Kind: TargetContent, ContentID: id}
}

// BundleTarget builds a target for a subscription tier.
func BundleTarget(tier Tier) Target {
	return Target{Kind: TargetBundle, Tier: tier}
}

// ParseTarget decodes a wire movieId value. The closed set of bundle
// sentinels maps to bundle targets (the legacy all-access sentinel is folded
// into the premium tier); everything else is a literal content id.
func ParseTarget(wire string) Target {
	switch wire {
	case string(TierPremium), legacyTierAll:
		return BundleTarget(TierPremium)
	case string(TierSeries):
		return BundleTarget(TierSeries)
	case string(TierMovies):
		return BundleTarget(TierMovies)
	default:
		return ContentTarget(wire)
	}
}

// Wire encodes the target back into the movieId attribute expected by the
// backend and the payment functions.
func (t Target) Wire() string {
	if t.Kind == TargetBundle {
		return string(t.Tier)
	}
	return t.ContentID
}

// IsBundle reports whether the target is the given subscription tier.
func (t Target) IsBundle(tier Tier) bool {
	return t.Kind == TargetBundle && t.Tier == tier
}

// PurchaseStatus values observed on purchase documents. Anything other than
// PAID denies access.
const StatusPaid = "PAID"

// Purchase is a grant record. It is created through the payment-initiation
// function and mutated only by the backend when payment clears; the client
// never writes it directly. A purchase grants access only while
// Status == PAID and ExpiresAt is in the future.
type Purchase struct {
	ID        string
	UserID    string
	Target    Target
	Status    string
	ExpiresAt time.Time
}
