package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/batorigb/kinotv/internal/client/models"
	"github.com/batorigb/kinotv/internal/common"
)

// movieDoc mirrors a document of the movies collection.
type movieDoc struct {
	ID          string    `json:"$id"`
	CreatedAt   time.Time `json:"$createdAt"`
	Title       string    `json:"title"`
	PosterURL   string    `json:"posterUrl"`
	StreamURL   string    `json:"streamUrl"`
	TrailerURL  string    `json:"trailerUrl"`
	Rating      float64   `json:"rating"`
	ReleaseYear int       `json:"releaseYear"`
	Type        string    `json:"type"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	Overview    string    `json:"overview"`
	EpisodeURLs []string  `json:"episodeUrl"`
}

func (d movieDoc) toModel() (models.Movie, error) {
	if d.ID == "" || d.Title == "" {
		return models.Movie{}, &ParseError{Path: "movies", Err: errors.New("document missing $id or title")}
	}
	return models.Movie{
		ID:          d.ID,
		Title:       d.Title,
		PosterURL:   d.PosterURL,
		StreamURL:   d.StreamURL,
		TrailerURL:  d.TrailerURL,
		Rating:      d.Rating,
		ReleaseYear: d.ReleaseYear,
		Type:        models.MovieType(d.Type),
		Price:       d.Price,
		Category:    d.Category,
		Overview:    d.Overview,
		EpisodeURLs: d.EpisodeURLs,
		CreatedAt:   d.CreatedAt,
	}, nil
}

func decodeMovies(raw []json.RawMessage) ([]models.Movie, error) {
	movies := make([]models.Movie, 0, len(raw))
	for _, r := range raw {
		var d movieDoc
		if err := json.Unmarshal(r, &d); err != nil {
			return nil, &ParseError{Path: "movies", Err: err}
		}
		m, err := d.toModel()
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// MovieByID fetches a single movie. A missing document is an expected outcome
// and returns common.ErrNotFound without logging; any other failure is logged
// and surfaced.
func (c *Client) MovieByID(ctx context.Context, id string) (models.Movie, error) {
	var d movieDoc
	if err := c.getDocument(ctx, c.cfg.MoviesCollectionID, id, &d); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.Movie{}, err
		}
		c.log.Error(ctx, "movie fetch failed", "id", id, "error", err)
		return models.Movie{}, err
	}
	return d.toModel()
}

// SearchMovies full-text searches movie titles. An empty result is not an
// error.
func (c *Client) SearchMovies(ctx context.Context, term string) ([]models.Movie, error) {
	raw, err := c.listDocuments(ctx, c.cfg.MoviesCollectionID, []Query{Search("title", term)})
	if err != nil {
		c.log.Error(ctx, "movie search failed", "term", term, "error", err)
		return nil, err
	}
	return decodeMovies(raw)
}

// MoviesByCategory lists movies with an exact category match.
func (c *Client) MoviesByCategory(ctx context.Context, category string) ([]models.Movie, error) {
	raw, err := c.listDocuments(ctx, c.cfg.MoviesCollectionID, []Query{Equal("category", category)})
	if err != nil {
		c.log.Error(ctx, "category listing failed", "category", category, "error", err)
		return nil, err
	}
	return decodeMovies(raw)
}

// LatestMovies lists the catalog ordered by creation time, newest first.
func (c *Client) LatestMovies(ctx context.Context) ([]models.Movie, error) {
	raw, err := c.listDocuments(ctx, c.cfg.MoviesCollectionID, []Query{OrderDesc("$createdAt")})
	if err != nil {
		c.log.Error(ctx, "movie listing failed", "error", err)
		return nil, err
	}
	return decodeMovies(raw)
}
