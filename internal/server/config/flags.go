package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/bharat3214/Genei/internal/flagx"
)

var serverFlags = []string{
	"-a", "-grpc", "-d", "-s", "-t", "-r", "-u", "-p", "-b", "-g", "-e", "-log", "-log-backend", "-seed", "-origins",
}

// parseFlags populates Config fields from command-line flags.
//
//	-a string            REST bind address (e.g., ":8080")
//	-grpc string         gRPC health bind address (e.g., ":50051")
//	-d string            PostgreSQL DSN; empty keeps the in-memory store
//	-s string            JWT HMAC secret key
//	-t int               access token validity, minutes
//	-r int               refresh token validity, minutes
//	-u / -p string       S3 root user / password
//	-b / -g / -e string  S3 bucket / region / base endpoint
//	-log string          log level
//	-log-backend string  slog or zap
//	-seed bool           load demo data at startup
//	-origins string      comma separated CORS origins
//
// Only the flags above are considered (see flagx.FilterArgs); duration
// flags are whole minutes. Boolean flags must use the -seed=false form.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run the REST API")
	fs.StringVar(&config.EndpointAddrGRPC, "grpc", config.EndpointAddrGRPC, "address and port to run the gRPC health endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh_token_validity_duration (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket for paper documents")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.LogLevel, "log", config.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogBackend, "log-backend", config.LogBackend, "log backend (slog, zap)")
	fs.BoolVar(&config.SeedData, "seed", config.SeedData, "load demo data at startup")

	origins := fs.String("origins", strings.Join(config.AllowedOrigins, ","), "comma separated CORS origins")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
	config.AllowedOrigins = flagx.SplitList(*origins)
}
