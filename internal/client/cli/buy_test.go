package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batorigb/kinotv/internal/client/models"
	"github.com/batorigb/kinotv/internal/client/services"
	"github.com/batorigb/kinotv/internal/common"
)

type fakeCatalogService struct {
	movies map[string]models.Movie
}

func (f *fakeCatalogService) Latest(context.Context) ([]models.Movie, error)            { return nil, nil }
func (f *fakeCatalogService) Search(context.Context, string) ([]models.Movie, error)    { return nil, nil }
func (f *fakeCatalogService) ByCategory(context.Context, string) ([]models.Movie, error) { return nil, nil }
func (f *fakeCatalogService) Trending(context.Context) ([]models.SearchMetric, error)   { return nil, nil }

func (f *fakeCatalogService) ByID(_ context.Context, id string) (models.Movie, error) {
	m, ok := f.movies[id]
	if !ok {
		return models.Movie{}, common.ErrNotFound
	}
	return m, nil
}

type fakeLibraryService struct {
	hasAccess bool
}

func (f *fakeLibraryService) SavedMovies(context.Context, string) ([]services.SavedMovie, error) {
	return nil, nil
}

func (f *fakeLibraryService) HasAccess(context.Context, string, models.Movie) (bool, error) {
	return f.hasAccess, nil
}

func buyTestApp(catalog *fakeCatalogService, library *fakeLibraryService) *App {
	return &App{
		catalog: catalog,
		library: library,
		user:    &models.User{ID: "u1", Name: "Bat"},
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

func TestMovieRequest(t *testing.T) {
	catalog := &fakeCatalogService{movies: map[string]models.Movie{
		"m1": {ID: "m1", Title: "Аварга", Price: 5000},
	}}
	a := buyTestApp(catalog, &fakeLibraryService{})

	req, err := a.movieRequest(context.Background(), "m1")
	require.NoError(t, err)

	assert.Equal(t, "u1", req.UserID)
	assert.Equal(t, models.ContentTarget("m1"), req.Target)
	assert.Equal(t, int64(5000), req.Amount)
	assert.Equal(t, "Аварга", req.Label)
	assert.Zero(t, req.DurationDays)
}

func TestMovieRequest_FreeTitle(t *testing.T) {
	catalog := &fakeCatalogService{movies: map[string]models.Movie{
		"m1": {ID: "m1", Title: "Аварга", Price: 0},
	}}
	a := buyTestApp(catalog, &fakeLibraryService{})

	req, err := a.movieRequest(context.Background(), "m1")
	require.NoError(t, err)
	assert.Empty(t, req.UserID, "free titles are not purchasable")
}

func TestMovieRequest_AlreadyOwned(t *testing.T) {
	catalog := &fakeCatalogService{movies: map[string]models.Movie{
		"m1": {ID: "m1", Title: "Аварга", Price: 5000},
	}}
	a := buyTestApp(catalog, &fakeLibraryService{hasAccess: true})

	req, err := a.movieRequest(context.Background(), "m1")
	require.NoError(t, err)
	assert.Empty(t, req.UserID, "owned titles are not re-purchased")
}

func TestMovieRequest_UnknownTitle(t *testing.T) {
	a := buyTestApp(&fakeCatalogService{}, &fakeLibraryService{})

	_, err := a.movieRequest(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestBundleRequest(t *testing.T) {
	scriptInput(t, []string{"premium", "30"}, nil)
	a := buyTestApp(&fakeCatalogService{}, &fakeLibraryService{})

	req, err := a.bundleRequest()
	require.NoError(t, err)

	assert.Equal(t, models.BundleTarget(models.TierPremium), req.Target)
	assert.Equal(t, int64(29900), req.Amount)
	assert.Equal(t, 30, req.DurationDays)
	assert.Contains(t, req.Label, "30")
}

func TestBundleRequest_UnknownTier(t *testing.T) {
	scriptInput(t, []string{"platinum"}, nil)
	a := buyTestApp(&fakeCatalogService{}, &fakeLibraryService{})

	req, err := a.bundleRequest()
	require.NoError(t, err)
	assert.Empty(t, req.UserID)
}

func TestBundleRequest_BadDuration(t *testing.T) {
	scriptInput(t, []string{"series", "forever"}, nil)
	a := buyTestApp(&fakeCatalogService{}, &fakeLibraryService{})

	req, err := a.bundleRequest()
	require.NoError(t, err)
	assert.Empty(t, req.UserID)
}
