package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/batorigb/kinotv/internal/flagx"
	"github.com/batorigb/kinotv/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "5s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration). Empty JSON fields keep the
// value already in Config.
type JsonConfig struct {
	PlatformEndpoint string `json:"platform_endpoint"`
	ProjectID        string `json:"project_id"`

	DatabaseID            string `json:"database_id"`
	MoviesCollectionID    string `json:"movies_collection_id"`
	MetricsCollectionID   string `json:"metrics_collection_id"`
	PurchasesCollectionID string `json:"purchases_collection_id"`
	UsersCollectionID     string `json:"users_collection_id"`

	PaymentCreateFunctionID string `json:"payment_create_function_id"`
	PaymentStatusFunctionID string `json:"payment_status_function_id"`
	IdentityCheckFunctionID string `json:"identity_check_function_id"`
	PasswordResetFunctionID string `json:"password_reset_function_id"`

	PollInterval   timex.Duration `json:"poll_interval"`
	RequestTimeout timex.Duration `json:"request_timeout"`

	LocalDBPath string `json:"local_db_path"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags (flagx.JsonConfigFlags). When no file is named the
// function is a no-op. Read or unmarshal errors panic; configuration happens
// before anything else runs, a bad file should stop the program.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.PlatformEndpoint, jc.PlatformEndpoint)
	overlay(&cfg.ProjectID, jc.ProjectID)
	overlay(&cfg.DatabaseID, jc.DatabaseID)
	overlay(&cfg.MoviesCollectionID, jc.MoviesCollectionID)
	overlay(&cfg.MetricsCollectionID, jc.MetricsCollectionID)
	overlay(&cfg.PurchasesCollectionID, jc.PurchasesCollectionID)
	overlay(&cfg.UsersCollectionID, jc.UsersCollectionID)
	overlay(&cfg.PaymentCreateFunctionID, jc.PaymentCreateFunctionID)
	overlay(&cfg.PaymentStatusFunctionID, jc.PaymentStatusFunctionID)
	overlay(&cfg.IdentityCheckFunctionID, jc.IdentityCheckFunctionID)
	overlay(&cfg.PasswordResetFunctionID, jc.PasswordResetFunctionID)
	overlay(&cfg.LocalDBPath, jc.LocalDBPath)

	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = time.Duration(jc.PollInterval.Duration)
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
