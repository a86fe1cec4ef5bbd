package config

import (
	"flag"
	"os"
	"time"

	"github.com/batorigb/kinotv/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-e string   base URL of the backend platform (default from Config)
//	-p string   platform project id (default from Config)
//	-d string   path of the local session database (default from Config)
//	-i int      payment status poll interval in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-p", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.PlatformEndpoint, "e", cfg.PlatformEndpoint, "base URL of the backend platform")
	fs.StringVar(&cfg.ProjectID, "p", cfg.ProjectID, "platform project id")
	fs.StringVar(&cfg.LocalDBPath, "d", cfg.LocalDBPath, "path of the local session database")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "payment status poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
}
