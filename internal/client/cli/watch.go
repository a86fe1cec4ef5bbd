package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Watch resolves access for one title and prints its playback URLs. Access
// is re-resolved on every invocation; an expired purchase loses playback the
// next time the user tries, not mid-session.
func (a *App) Watch(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return nil
	}

	movieID := strings.TrimSpace(strings.Join(args, " "))
	if movieID == "" {
		id, err := getSimpleText(a.reader, "Enter movie id", os.Stdout)
		if err != nil {
			return err
		}
		movieID = strings.TrimSpace(id)
	}

	movie, err := a.catalog.ByID(ctx, movieID)
	if err != nil {
		return err
	}

	if movie.Price > 0 {
		ok, err := a.library.HasAccess(ctx, a.user.ID, movie)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("No access to %s. Buy it with: buy %s\n", movie.Title, movie.ID)
			if movie.TrailerURL != "" {
				fmt.Println("Trailer:", movie.TrailerURL)
			}
			return nil
		}
	}

	fmt.Println(movie.Title)
	if movie.IsSeries() {
		for i, url := range movie.EpisodeURLs {
			fmt.Printf("Episode %d: %s\n", i+1, url)
		}
		return nil
	}
	fmt.Println("Stream:", movie.StreamURL)
	return nil
}
