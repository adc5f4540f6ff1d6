// Command hawkguard is a minimal example HTTP server demonstrating Hawk
// authentication end to end: it issues a WWW-Authenticate timestamp
// challenge on /ts, validates inbound Authorization headers on /greeting
// through a mux middleware, and loads its single credential from the
// environment/.env.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/jprausch/hawk-go"
	"github.com/jprausch/hawk-go/internal/hawklog"
)

func main() {
	_ = godotenv.Load()
	hawklog.Init(os.Getenv("HAWK_LOG_LEVEL"))

	id := envOr("HAWK_ID", "jdoe")
	secret := envOr("HAWK_SECRET", "werxhqb98rpaxn39848xrunpaw3489ruxnpa98w4rxn")
	alg, err := hawk.LookupAlgorithm(envOr("HAWK_ALGORITHM", "sha256"))
	if err != nil {
		hawklog.L.Fatal().Err(err).Msg("hawkguard: bad HAWK_ALGORITHM")
	}

	srv := hawk.NewServer(func(r *http.Request, gotID string) (*hawk.Credentials, error) {
		if gotID != id {
			return nil, nil
		}
		return &hawk.Credentials{ID: id, Key: []byte(secret), Algorithm: alg}, nil
	})
	srv.ClockSkew = 60

	r := mux.NewRouter()
	r.HandleFunc("/ts", challengeHandler(srv, alg, []byte(secret))).Methods(http.MethodGet)
	r.Handle("/greeting", hawkMiddleware(srv, alg, []byte(secret))(http.HandlerFunc(greetingHandler))).Methods(http.MethodPost)

	addr := envOr("HAWK_LISTEN_ADDR", ":8080")
	hawklog.L.Info().Str("addr", addr).Msg("hawkguard: listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		hawklog.L.Fatal().Err(err).Msg("hawkguard: server exited")
	}
}

// hawkMiddleware rejects any request whose Authorization header fails
// hawk.Server.Authenticate, replying with a 401 and a fresh
// WWW-Authenticate challenge.
func hawkMiddleware(srv *hawk.Server, alg hawk.Algorithm, secret []byte) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, creds, err := srv.Authenticate(r)
			if err != nil {
				challenge, cErr := srv.Challenge(alg, secret)
				if cErr == nil {
					w.Header().Set("WWW-Authenticate", challenge)
				}
				hawklog.L.Warn().Err(err).Msg("hawkguard: rejected request")
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			hawklog.WithKeyID(creds.ID).Debug().Msg("hawkguard: authenticated request")
			next.ServeHTTP(w, r)
		})
	}
}

func challengeHandler(srv *hawk.Server, alg hawk.Algorithm, secret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		challenge, err := srv.Challenge(alg, secret)
		if err != nil {
			hawklog.L.Error().Err(err).Msg("hawkguard: failed to build challenge")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("WWW-Authenticate", challenge)
		w.WriteHeader(http.StatusUnauthorized)
	}
}

func greetingHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "Hello, authenticated caller.")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
