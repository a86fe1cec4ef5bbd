package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/batorigb/kinotv/internal/client/entitlement"
	"github.com/batorigb/kinotv/internal/client/models"
	"github.com/batorigb/kinotv/internal/common"
	"github.com/batorigb/kinotv/internal/logging"
)

// libraryAPI is the slice of the gateway the library service needs.
type libraryAPI interface {
	PurchasesByUser(ctx context.Context, userID string) ([]models.Purchase, error)
	MovieByID(ctx context.Context, id string) (models.Movie, error)
}

// SavedMovie is a purchased title joined with its purchase expiry.
type SavedMovie struct {
	models.Movie
	ExpiresAt time.Time
}

// LibraryService exposes the user's purchased content and access checks.
type LibraryService interface {
	// SavedMovies returns the individually purchased titles, each joined
	// with the expiry of its purchase. Bundle purchases do not name a
	// title and are not listed. Purchases whose catalog entry has been
	// removed are silently omitted.
	SavedMovies(ctx context.Context, userID string) ([]SavedMovie, error)

	// HasAccess reports whether the user may play the given item, by
	// resolving their active purchases against it.
	HasAccess(ctx context.Context, userID string, item models.Movie) (bool, error)
}

type libraryService struct {
	api libraryAPI
	log logging.Logger
}

func NewLibraryService(api libraryAPI, log logging.Logger) LibraryService {
	return &libraryService{api: api, log: log}
}

func (l *libraryService) SavedMovies(ctx context.Context, userID string) ([]SavedMovie, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is empty", common.ErrValidation)
	}

	purchases, err := l.api.PurchasesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var content []models.Purchase
	for _, p := range purchases {
		if p.Target.Kind == models.TargetContent {
			content = append(content, p)
		}
	}
	if len(content) == 0 {
		return nil, nil
	}

	// The catalog lookups are independent, fetch them concurrently. The
	// slots slice keeps the purchase order stable regardless of which
	// lookup finishes first.
	slots := make([]*SavedMovie, len(content))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range content {
		g.Go(func() error {
			movie, err := l.api.MovieByID(gctx, p.Target.ContentID)
			if errors.Is(err, common.ErrNotFound) {
				l.log.Info(gctx, "purchased title no longer in catalog", "movieID", p.Target.ContentID)
				return nil
			}
			if err != nil {
				return err
			}
			slots[i] = &SavedMovie{Movie: movie, ExpiresAt: p.ExpiresAt}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	saved := make([]SavedMovie, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			saved = append(saved, *s)
		}
	}
	return saved, nil
}

func (l *libraryService) HasAccess(ctx context.Context, userID string, item models.Movie) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("%w: user id is empty", common.ErrValidation)
	}
	purchases, err := l.api.PurchasesByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return entitlement.Resolve(purchases, item), nil
}
