package config

import (
	"flag"
	"os"
	"time"

	"github.com/bharat3214/Genei/internal/flagx"
)

var clientFlags = []string{"-a", "-i", "-timeout", "-db", "-dl", "-log"}

// parseFlags populates Config fields from command-line flags. Only the flags
// in clientFlags are considered; interval flags are whole seconds.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], clientFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the REST API")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("timeout", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.SessionDB, "db", cfg.SessionDB, "local session database")
	fs.StringVar(&cfg.DownloadDir, "dl", cfg.DownloadDir, "directory for downloaded documents")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
