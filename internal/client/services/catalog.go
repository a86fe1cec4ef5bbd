package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/batorigb/kinotv/internal/client/models"
	"github.com/batorigb/kinotv/internal/common"
	"github.com/batorigb/kinotv/internal/logging"
)

// catalogAPI is the slice of the gateway the catalog service needs.
type catalogAPI interface {
	LatestMovies(ctx context.Context) ([]models.Movie, error)
	SearchMovies(ctx context.Context, term string) ([]models.Movie, error)
	MoviesByCategory(ctx context.Context, category string) ([]models.Movie, error)
	MovieByID(ctx context.Context, id string) (models.Movie, error)
	TrendingMovies(ctx context.Context) ([]models.SearchMetric, error)
	RecordSearchHit(ctx context.Context, term string, movie models.Movie) error
}

// CatalogService exposes the content browsing operations.
type CatalogService interface {
	Latest(ctx context.Context) ([]models.Movie, error)
	Search(ctx context.Context, term string) ([]models.Movie, error)
	ByCategory(ctx context.Context, category string) ([]models.Movie, error)
	ByID(ctx context.Context, id string) (models.Movie, error)
	Trending(ctx context.Context) ([]models.SearchMetric, error)
}

type catalogService struct {
	api catalogAPI
	log logging.Logger
}

func NewCatalogService(api catalogAPI, log logging.Logger) CatalogService {
	return &catalogService{api: api, log: log}
}

func (c *catalogService) Latest(ctx context.Context) ([]models.Movie, error) {
	return c.api.LatestMovies(ctx)
}

// Search runs a title search and, when it yields results, records a search
// hit for the top match. Metrics are best effort: a failure to record never
// fails the search itself.
func (c *catalogService) Search(ctx context.Context, term string) ([]models.Movie, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is empty", common.ErrValidation)
	}

	movies, err := c.api.SearchMovies(ctx, term)
	if err != nil {
		return nil, err
	}

	if len(movies) > 0 {
		if err := c.api.RecordSearchHit(ctx, term, movies[0]); err != nil {
			c.log.Warn(ctx, "recording search hit failed", "term", term, "error", err)
		}
	}
	return movies, nil
}

func (c *catalogService) ByCategory(ctx context.Context, category string) ([]models.Movie, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("%w: category is empty", common.ErrValidation)
	}
	return c.api.MoviesByCategory(ctx, category)
}

func (c *catalogService) ByID(ctx context.Context, id string) (models.Movie, error) {
	if id == "" {
		return models.Movie{}, fmt.Errorf("%w: movie id is empty", common.ErrValidation)
	}
	return c.api.MovieByID(ctx, id)
}

func (c *catalogService) Trending(ctx context.Context) ([]models.SearchMetric, error) {
	return c.api.TrendingMovies(ctx)
}
