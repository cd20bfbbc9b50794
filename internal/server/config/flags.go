package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/chronofeed/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-m string   credential file path
//	-d string   content store path
//	-z string   store compression ("snappy", "zstd", "none")
//	-s string   session cookie HMAC secret key
//	-t int      session validity, minutes
//	-p int      feed page size
//	-x int      max page size clamp
//	-l string   log file path (empty: stdout)
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes
//     using flagx.FilterArgs, avoiding collisions with other components.
//   - The session validity is accepted as an integer in minutes and then
//     converted to a time.Duration value.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-d", "-z", "-s", "-t", "-p", "-x", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.AuthPath, "m", config.AuthPath, "credential file path")
	fs.StringVar(&config.StorePath, "d", config.StorePath, "content store path")
	fs.StringVar(&config.StoreCompression, "z", config.StoreCompression, "store compression")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session_validity_duration (in minutes)")

	fs.IntVar(&config.PageSize, "p", config.PageSize, "feed page size")
	fs.IntVar(&config.MaxPageSize, "x", config.MaxPageSize, "max page size")
	fs.StringVar(&config.LogFile, "l", config.LogFile, "log file path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
}
