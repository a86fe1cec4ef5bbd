package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/batorigb/kinotv/internal/client/models"
)

// Latest shows the newest titles. The first invocation triggers the fetch;
// later invocations refresh.
func (a *App) Latest(ctx context.Context) error {
	a.latest.Activate(ctx)
	if a.latest.Err() != nil || a.latest.Data() == nil {
		if _, ok := a.latest.Run(ctx); !ok {
			return a.latest.Err()
		}
	}
	printMovies(a.latest.Data())
	return nil
}

// Search runs a title search. The term comes from the command arguments or,
// when absent, from a prompt; an empty term just clears the previous results.
func (a *App) Search(ctx context.Context, args []string) error {
	term := strings.TrimSpace(strings.Join(args, " "))
	if term == "" {
		t, err := getSimpleText(a.reader, "Enter search term", os.Stdout)
		if err != nil {
			return err
		}
		term = strings.TrimSpace(t)
	}
	if term == "" {
		a.search.Reset()
		fmt.Println("Search cleared.")
		return nil
	}

	a.searchTerm = term
	movies, ok := a.search.Run(ctx)
	if !ok {
		return a.search.Err()
	}
	if len(movies) == 0 {
		fmt.Println("Nothing found.")
		return nil
	}
	printMovies(movies)
	return nil
}

// Category lists the titles of one category.
func (a *App) Category(ctx context.Context, args []string) error {
	category := strings.TrimSpace(strings.Join(args, " "))
	if category == "" {
		c, err := getSimpleText(a.reader, "Enter category", os.Stdout)
		if err != nil {
			return err
		}
		category = strings.TrimSpace(c)
	}

	movies, err := a.catalog.ByCategory(ctx, category)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		fmt.Println("Nothing in this category.")
		return nil
	}
	printMovies(movies)
	return nil
}

// Movie prints the details of one title.
func (a *App) Movie(ctx context.Context, args []string) error {
	movieID := strings.TrimSpace(strings.Join(args, " "))
	if movieID == "" {
		id, err := getSimpleText(a.reader, "Enter movie id", os.Stdout)
		if err != nil {
			return err
		}
		movieID = strings.TrimSpace(id)
	}

	m, err := a.catalog.ByID(ctx, movieID)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%d)\n", m.Title, m.ReleaseYear)
	fmt.Printf("Category: %s  Rating: %.1f\n", m.Category, m.Rating)
	if m.Price > 0 {
		fmt.Printf("Price: %d₮\n", m.Price)
	} else {
		fmt.Println("Price: free")
	}
	if m.Overview != "" {
		fmt.Println(m.Overview)
	}
	if m.IsSeries() {
		fmt.Printf("Series, %d episodes\n", len(m.EpisodeURLs))
	}
	if m.TrailerURL != "" {
		fmt.Println("Trailer:", m.TrailerURL)
	}
	return nil
}

// Trending prints the most searched titles.
func (a *App) Trending(ctx context.Context) error {
	trending, err := a.catalog.Trending(ctx)
	if err != nil {
		return err
	}
	if len(trending) == 0 {
		fmt.Println("No trending titles yet.")
		return nil
	}
	for i, m := range trending {
		fmt.Printf("%d. %s [%s] (%d searches)\n", i+1, m.Title, m.MovieID, m.Count)
	}
	return nil
}

func printMovies(movies []models.Movie) {
	if len(movies) == 0 {
		fmt.Println("No titles.")
		return
	}
	for _, m := range movies {
		kind := "movie"
		if m.IsSeries() {
			kind = fmt.Sprintf("series, %d episodes", len(m.EpisodeURLs))
		}
		price := "free"
		if m.Price > 0 {
			price = fmt.Sprintf("%d₮", m.Price)
		}
		fmt.Printf("%s  %s (%d, %s) - %s\n", m.ID, m.Title, m.ReleaseYear, kind, price)
	}
}
