// Package hawklog wraps zerolog the way limaologic's pkg/logger does: a
// package-level logger callers can redirect, plus small level helpers so the
// rest of the module never imports zerolog directly.
package hawklog

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// L is the package-level logger: a console writer on stderr with no level of
// its own, filtered only by the global level that Init sets.
var L = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	With().Timestamp().Logger()

// Init sets the global level from a string ("debug", "info", "warn",
// "error"), defaulting to info on anything else.
func Init(level string) {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// WithKeyID returns a logger carrying the credential identifier field, used
// by Server and cmd/hawkguard so auth outcomes can be traced back to a key without
// logging the secret or MAC.
func WithKeyID(id string) zerolog.Logger {
	return L.With().Str("key_id", id).Logger()
}
