package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/batorigb/kinotv/internal/client/config"
	"github.com/batorigb/kinotv/internal/client/fetch"
	"github.com/batorigb/kinotv/internal/client/gateway"
	"github.com/batorigb/kinotv/internal/client/models"
	"github.com/batorigb/kinotv/internal/client/payment"
	"github.com/batorigb/kinotv/internal/client/repositories/session"
	"github.com/batorigb/kinotv/internal/client/services"
	"github.com/batorigb/kinotv/internal/client/store"
	"github.com/batorigb/kinotv/internal/logging"
)

// App wires the CLI commands to the services and carries the signed-in user
// for the lifetime of the process.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	gw      *gateway.Client
	auth    services.AuthService
	catalog services.CatalogService
	library services.LibraryService
	payCfg  payment.Config

	user   *models.User
	reader *bufio.Reader

	latest     *fetch.Fetcher[[]models.Movie]
	search     *fetch.Fetcher[[]models.Movie]
	searchTerm string
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := store.Open(ctx, c.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening local database: %w", err)
	}

	gw := gateway.New(gateway.Config{
		Endpoint:              c.PlatformEndpoint,
		ProjectID:             c.ProjectID,
		DatabaseID:            c.DatabaseID,
		MoviesCollectionID:    c.MoviesCollectionID,
		MetricsCollectionID:   c.MetricsCollectionID,
		PurchasesCollectionID: c.PurchasesCollectionID,
		UsersCollectionID:     c.UsersCollectionID,
		RequestTimeout:        c.RequestTimeout,
	}, log)

	sessions := session.NewSQLiteRepository(db)
	auth := services.NewAuthService(gw, sessions, services.AuthConfig{
		IdentityCheckFunctionID: c.IdentityCheckFunctionID,
		PasswordResetFunctionID: c.PasswordResetFunctionID,
	}, log)
	catalog := services.NewCatalogService(gw, log)
	library := services.NewLibraryService(gw, log)

	a := &App{
		config:  c,
		log:     log,
		db:      db,
		gw:      gw,
		auth:    auth,
		catalog: catalog,
		library: library,
		payCfg: payment.Config{
			CreateFunctionID: c.PaymentCreateFunctionID,
			StatusFunctionID: c.PaymentStatusFunctionID,
			PollInterval:     c.PollInterval,
		},
		reader: bufio.NewReader(os.Stdin),
	}

	a.latest = fetch.New(catalog.Latest, fetch.WithAutoRun())
	a.search = fetch.New(func(ctx context.Context) ([]models.Movie, error) {
		return catalog.Search(ctx, a.searchTerm)
	})

	return a, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

// Run restores a persisted session if one is still valid, then enters the
// REPL. It returns when the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	user, err := a.auth.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}
	if user != nil {
		a.user = user
		fmt.Printf("Welcome back, %s!\n", user.Name)
	}

	fmt.Println("kinotv CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing local database failed", "error", err)
	}
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.Name)
}
