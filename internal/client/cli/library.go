package cli

import (
	"context"
	"fmt"
)

// Library lists the titles the user has purchased individually, with the
// expiry of each purchase. Bundles grant access without appearing here.
func (a *App) Library(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return nil
	}

	saved, err := a.library.SavedMovies(ctx, a.user.ID)
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		fmt.Println("No purchased titles.")
		return nil
	}
	for _, s := range saved {
		fmt.Printf("%s  %s (until %s)\n", s.ID, s.Title, s.ExpiresAt.Format("2006-01-02"))
	}
	return nil
}
