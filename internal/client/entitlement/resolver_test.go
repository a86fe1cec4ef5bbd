package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/batorigb/kinotv/internal/client/models"
)

func paid(target models.Target) models.Purchase {
	return models.Purchase{
		UserID:    "u1",
		Target:    target,
		Status:    models.StatusPaid,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func movie(id string, t models.MovieType) models.Movie {
	return models.Movie{ID: id, Title: "t", Type: t}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		purchases []models.Purchase
		item      models.Movie
		want      bool
	}{
		{
			name:      "no purchases denies",
			purchases: nil,
			item:      movie("m1", models.TypeMovie),
			want:      false,
		},
		{
			name:      "premium grants movies",
			purchases: []models.Purchase{paid(models.BundleTarget(models.TierPremium))},
			item:      movie("m1", models.TypeMovie),
			want:      true,
		},
		{
			name:      "premium grants series",
			purchases: []models.Purchase{paid(models.BundleTarget(models.TierPremium))},
			item:      movie("s1", models.TypeSeries),
			want:      true,
		},
		{
			name:      "series bundle grants series",
			purchases: []models.Purchase{paid(models.BundleTarget(models.TierSeries))},
			item:      movie("s1", models.TypeSeries),
			want:      true,
		},
		{
			name:      "series bundle does not grant movies",
			purchases: []models.Purchase{paid(models.BundleTarget(models.TierSeries))},
			item:      movie("m1", models.TypeMovie),
			want:      false,
		},
		{
			name:      "movies bundle grants movies",
			purchases: []models.Purchase{paid(models.BundleTarget(models.TierMovies))},
			item:      movie("m1", models.TypeMovie),
			want:      true,
		},
		{
			name:      "movies bundle does not grant series",
			purchases: []models.Purchase{paid(models.BundleTarget(models.TierMovies))},
			item:      movie("s1", models.TypeSeries),
			want:      false,
		},
		{
			name:      "direct grant matches its item",
			purchases: []models.Purchase{paid(models.ContentTarget("m1"))},
			item:      movie("m1", models.TypeMovie),
			want:      true,
		},
		{
			name:      "direct grant does not match other items",
			purchases: []models.Purchase{paid(models.ContentTarget("m1"))},
			item:      movie("m2", models.TypeMovie),
			want:      false,
		},
		{
			name: "legacy all-access sentinel behaves as premium",
			purchases: []models.Purchase{
				{Target: models.ParseTarget("ALL_ACCESS_SUBSCRIPTION"), Status: models.StatusPaid, ExpiresAt: time.Now().Add(time.Hour)},
			},
			item: movie("s1", models.TypeSeries),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.purchases, tt.item))
		})
	}
}

// End-to-end scenario from the purchase waterfall: an ALL_ACCESS_MOVIES
// holder can watch any movie but no series.
func TestResolve_MoviesBundleScenario(t *testing.T) {
	purchases := []models.Purchase{paid(models.BundleTarget(models.TierMovies))}

	assert.True(t, Resolve(purchases, movie("any-movie", models.TypeMovie)))
	assert.False(t, Resolve(purchases, movie("any-series", models.TypeSeries)))
}
