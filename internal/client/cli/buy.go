package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/batorigb/kinotv/internal/client/models"
	"github.com/batorigb/kinotv/internal/client/payment"
)

// bundleTiers maps the user-facing bundle names onto the grant sentinels.
var bundleTiers = map[string]models.Tier{
	"premium": models.TierPremium,
	"series":  models.TierSeries,
	"movies":  models.TierMovies,
}

// Buy starts a purchase: either one title by id, or a subscription bundle.
// It shows the payment QR payload, then waits until the payment is confirmed
// or the user presses Enter to abandon the attempt.
func (a *App) Buy(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return nil
	}
	if len(args) == 0 {
		fmt.Println("Usage: buy <movie-id> | buy bundle")
		return nil
	}

	var req payment.Request
	var err error
	if args[0] == "bundle" {
		req, err = a.bundleRequest()
	} else {
		req, err = a.movieRequest(ctx, args[0])
	}
	if err != nil {
		return err
	}
	if req.UserID == "" {
		// Nothing to buy, the handler already explained why.
		return nil
	}

	orch := payment.New(a.gw, a.payCfg, a.log)
	qr, err := orch.Begin(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Scan this QR code with your banking app to pay %d₮ for %s:\n", req.Amount, req.Label)
	fmt.Println(qr)
	fmt.Println("Waiting for payment confirmation... press Enter to cancel.")

	entered := make(chan struct{})
	go func() {
		_, _ = a.reader.ReadString('\n')
		close(entered)
	}()

	enterSeen := false
	for {
		select {
		case outcome := <-orch.Done():
			switch outcome {
			case payment.OutcomeSuccess:
				fmt.Println("Payment confirmed. Enjoy!")
			case payment.OutcomeAbandoned:
				fmt.Println("Purchase cancelled.")
			}
			if !enterSeen {
				fmt.Println("Press Enter to continue.")
				<-entered
			}
			return nil
		case <-entered:
			enterSeen = true
			orch.Cancel()
		case <-ctx.Done():
			orch.Cancel()
			return ctx.Err()
		}
	}
}

// movieRequest builds the purchase request for a single title. A zero-value
// request means the purchase should not proceed (free title, or already
// owned).
func (a *App) movieRequest(ctx context.Context, movieID string) (payment.Request, error) {
	movie, err := a.catalog.ByID(ctx, movieID)
	if err != nil {
		return payment.Request{}, err
	}
	if movie.Price <= 0 {
		fmt.Println("This title is free, just watch it.")
		return payment.Request{}, nil
	}

	ok, err := a.library.HasAccess(ctx, a.user.ID, movie)
	if err != nil {
		return payment.Request{}, err
	}
	if ok {
		fmt.Println("You already have access to this title.")
		return payment.Request{}, nil
	}

	return payment.Request{
		UserID: a.user.ID,
		Target: models.ContentTarget(movie.ID),
		Amount: movie.Price,
		Label:  movie.Title,
	}, nil
}

// bundleRequest interactively picks a bundle tier and duration and prices it.
func (a *App) bundleRequest() (payment.Request, error) {
	choice, err := getSimpleText(a.reader, "Choose a bundle: premium, series or movies", os.Stdout)
	if err != nil {
		return payment.Request{}, err
	}
	tier, ok := bundleTiers[strings.ToLower(strings.TrimSpace(choice))]
	if !ok {
		fmt.Println("Unknown bundle:", choice)
		return payment.Request{}, nil
	}

	durations := make([]string, 0, len(payment.BundleDurations))
	for _, d := range payment.BundleDurations {
		durations = append(durations, strconv.Itoa(d))
	}
	answer, err := getSimpleText(a.reader, "Duration in days: "+strings.Join(durations, ", "), os.Stdout)
	if err != nil {
		return payment.Request{}, err
	}
	days, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		fmt.Println("Not a number:", answer)
		return payment.Request{}, nil
	}

	amount, err := payment.BundlePrice(tier, days)
	if err != nil {
		return payment.Request{}, err
	}

	return payment.Request{
		UserID:       a.user.ID,
		Target:       models.BundleTarget(tier),
		Amount:       amount,
		Label:        payment.BundleLabel(tier, days),
		DurationDays: days,
	}, nil
}
