package gateway

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/batorigb/kinotv/internal/client/models"
)

// metricDoc mirrors a document of the search-metrics collection. Attribute
// names follow the backend schema.
type metricDoc struct {
	ID        string `json:"$id"`
	Term      string `json:"searchTerm"`
	Count     int    `json:"count"`
	MovieID   string `json:"movie_id"`
	Title     string `json:"title"`
	PosterURL string `json:"poster_url"`
}

func (d metricDoc) toModel() models.SearchMetric {
	return models.SearchMetric{
		ID:        d.ID,
		Term:      d.Term,
		Count:     d.Count,
		MovieID:   d.MovieID,
		Title:     d.Title,
		PosterURL: d.PosterURL,
	}
}

// trendingFetchLimit rows are pulled before client-side aggregation; the
// same movie can appear under many differently worded search terms.
const (
	trendingFetchLimit  = 25
	trendingResultLimit = 5
)

// RecordSearchHit upserts the metric row for the exact term: an existing row
// gets its count incremented, otherwise a new row is created with count 1 and
// a denormalized snapshot of the matched movie. The snapshot can go stale if
// the movie changes later; that is acceptable.
func (c *Client) RecordSearchHit(ctx context.Context, term string, movie models.Movie) error {
	raw, err := c.listDocuments(ctx, c.cfg.MetricsCollectionID, []Query{Equal("searchTerm", term)})
	if err != nil {
		c.log.Error(ctx, "search metric lookup failed", "term", term, "error", err)
		return err
	}

	if len(raw) > 0 {
		var existing metricDoc
		if err := json.Unmarshal(raw[0], &existing); err != nil {
			return &ParseError{Path: "metrics", Err: err}
		}
		update := map[string]any{"count": existing.Count + 1}
		if err := c.updateDocument(ctx, c.cfg.MetricsCollectionID, existing.ID, update); err != nil {
			c.log.Error(ctx, "search metric update failed", "term", term, "error", err)
			return err
		}
		return nil
	}

	data := map[string]any{
		"searchTerm": term,
		"count":      1,
		"movie_id":   movie.ID,
		"title":      movie.Title,
		"poster_url": movie.PosterURL,
	}
	if err := c.createDocument(ctx, c.cfg.MetricsCollectionID, uuid.NewString(), data, nil); err != nil {
		c.log.Error(ctx, "search metric create failed", "term", term, "error", err)
		return err
	}
	return nil
}

// TrendingMovies computes the top content by aggregated search-hit count:
// up to trendingFetchLimit rows ordered by count descending, grouped by the
// underlying movie id (summing counts across term variants), sorted and
// truncated to trendingResultLimit.
func (c *Client) TrendingMovies(ctx context.Context) ([]models.SearchMetric, error) {
	queries := []Query{OrderDesc("count"), Limit(trendingFetchLimit)}
	raw, err := c.listDocuments(ctx, c.cfg.MetricsCollectionID, queries)
	if err != nil {
		c.log.Error(ctx, "trending fetch failed", "error", err)
		return nil, err
	}

	metrics := make([]models.SearchMetric, 0, len(raw))
	for _, r := range raw {
		var d metricDoc
		if err := json.Unmarshal(r, &d); err != nil {
			return nil, &ParseError{Path: "metrics", Err: err}
		}
		metrics = append(metrics, d.toModel())
	}

	return aggregateTrending(metrics, trendingResultLimit), nil
}

// aggregateTrending groups metric rows by movie id, sums their counts, and
// returns the top n movies. Each group keeps the snapshot of its first
// (highest-count) row.
func aggregateTrending(metrics []models.SearchMetric, n int) []models.SearchMetric {
	byMovie := make(map[string]*models.SearchMetric)
	order := make([]string, 0, len(metrics))

	for _, m := range metrics {
		if agg, ok := byMovie[m.MovieID]; ok {
			agg.Count += m.Count
			continue
		}
		copyM := m
		byMovie[m.MovieID] = &copyM
		order = append(order, m.MovieID)
	}

	result := make([]models.SearchMetric, 0, len(order))
	for _, id := range order {
		result = append(result, *byMovie[id])
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Count > result[j].Count })

	if len(result) > n {
		result = result[:n]
	}
	return result
}
