package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// os.Args is filtered with flagx.FilterArgs so the JSON and env flags do not
// trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-db", "-session", "-t"})

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.CartDBPath, "db", cfg.CartDBPath, "local cart database path")
	fs.StringVar(&cfg.SessionName, "session", cfg.SessionName, "saved cart name")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
