package config

import "time"

// Config holds runtime settings for the kinotv CLI.
//
// The platform endpoint and project id select the hosted backend; database,
// collection and function ids are deployment identifiers within the project.
// PollInterval is the fixed delay between payment status checks while a
// purchase awaits confirmation.
type Config struct {
	PlatformEndpoint string
	ProjectID        string

	DatabaseID            string
	MoviesCollectionID    string
	MetricsCollectionID   string
	PurchasesCollectionID string
	UsersCollectionID     string

	PaymentCreateFunctionID string
	PaymentStatusFunctionID string
	IdentityCheckFunctionID string
	PasswordResetFunctionID string

	PollInterval   time.Duration
	RequestTimeout time.Duration

	LocalDBPath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.PlatformEndpoint = "https://platform.kinotv.mn"
	c.ProjectID = "kinotv"

	c.DatabaseID = "kinotv"
	c.MoviesCollectionID = "movies"
	c.MetricsCollectionID = "search_metrics"
	c.PurchasesCollectionID = "purchases"
	c.UsersCollectionID = "users"

	c.PaymentCreateFunctionID = "payment-create"
	c.PaymentStatusFunctionID = "payment-status"
	c.IdentityCheckFunctionID = "identity-check"
	c.PasswordResetFunctionID = "password-reset"

	c.PollInterval = 5 * time.Second
	c.RequestTimeout = 15 * time.Second

	c.LocalDBPath = "kinotv.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
