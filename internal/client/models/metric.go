package models

// SearchMetric is a persisted per-term search counter. The movie snapshot is
// denormalized at write time and may go stale if the movie changes later.
type SearchMetric struct {
	ID        string
	Term      string
	Count     int
	MovieID   string
	Title     string
	PosterURL string
}
