// Package models defines the client-side view of platform documents:
// movies, purchases, users, and search metrics.
package models

import "time"

// MovieType classifies a content item.
type MovieType string

const (
	TypeMovie  MovieType = "movie"
	TypeSeries MovieType = "series"
)

// Movie is a content item as stored in the movies collection. The client
// treats it as immutable; items are created and edited only in the backend.
type Movie struct {
	ID          string
	Title       string
	PosterURL   string
	StreamURL   string
	TrailerURL  string
	Rating      float64
	ReleaseYear int
	Type        MovieType
	Price       int64
	Category    string
	Overview    string
	EpisodeURLs []string
	CreatedAt   time.Time
}

// IsSeries reports whether the item carries episodes rather than a single
// stream.
func (m Movie) IsSeries() bool {
	return m.Type == TypeSeries
}
