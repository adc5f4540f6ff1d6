package hawk

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jprausch/hawk-go/internal/hawklog"
)

// Credentials is what a CredentialLookup returns for a given Hawk id: the
// shared secret and the algorithm it was issued under.
type Credentials struct {
	ID        string
	Key       []byte
	Algorithm Algorithm
}

// CredentialLookup resolves a Hawk id to its Credentials. It should return a
// nil *Credentials (not an error) for an id that simply doesn't exist;
// return an error only for lookup-infrastructure failures.
type CredentialLookup func(r *http.Request, id string) (*Credentials, error)

// Server validates inbound Authorization headers and issues
// WWW-Authenticate timestamp challenges.
type Server struct {
	Lookup CredentialLookup

	// ClockSkew bounds |now - ts|, in seconds. Zero disables the check, so
	// the default is permissive and callers opt in.
	ClockSkew int64

	// Offset is the server's own clock correction, added before comparing
	// against the request ts and before stamping a Challenge.
	Offset int64
}

// NewServer creates a Server backed by lookup.
func NewServer(lookup CredentialLookup) *Server {
	return &Server{Lookup: lookup}
}

// Authenticate validates the Authorization header on r. On success it
// returns the parsed fields and the Credentials that verified them. Failures
// are classified: ErrParse/ErrBadScheme for a malformed header,
// ErrTokenValidation for an unknown id or MAC mismatch, ErrTimeValue for a
// ts outside ClockSkew.
func (s *Server) Authenticate(r *http.Request) (AuthFields, *Credentials, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return AuthFields{}, nil, fmt.Errorf("%w: missing Authorization header", ErrParse)
	}

	f, err := ParseAuthorization(header)
	if err != nil {
		return AuthFields{}, nil, err
	}

	creds, err := s.Lookup(r, f.ID)
	if err != nil {
		return AuthFields{}, nil, fmt.Errorf("%w: credential lookup failed: %v", ErrGeneric, err)
	}
	if creds == nil {
		hawklog.WithKeyID(f.ID).Warn().Msg("hawk: unknown credential id")
		return AuthFields{}, nil, fmt.Errorf("%w: unknown id %q", ErrTokenValidation, f.ID)
	}

	if s.ClockSkew > 0 {
		now := time.Now().Unix() + s.Offset
		skew := now - f.TS
		if skew < 0 {
			skew = -skew
		}
		if skew > s.ClockSkew {
			return AuthFields{}, nil, fmt.Errorf("%w: ts %d outside %ds skew of %d", ErrTimeValue, f.TS, s.ClockSkew, now)
		}
	}

	host, port := splitHostPort(r)
	path := r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}

	base, err := BuildAuthBaseString(nil, f.TS, f.Nonce, r.Method, path, host, port, f.Hash, f.Ext, f.App, f.Dlg)
	if err != nil {
		return AuthFields{}, nil, err
	}

	expected, err := Sign(creds.Algorithm, creds.Key, base)
	if err != nil {
		return AuthFields{}, nil, err
	}

	if !ConstantTimeCompare(expected, f.MAC) {
		hawklog.WithKeyID(f.ID).Warn().Msg("hawk: MAC mismatch")
		return AuthFields{}, nil, fmt.Errorf("%w: MAC mismatch", ErrTokenValidation)
	}

	return f, creds, nil
}

// Challenge builds a WWW-Authenticate header value carrying the server's
// current timestamp and its HMAC (tsm), so a client with a skewed clock can
// learn and verify the server's notion of now before retrying.
func (s *Server) Challenge(alg Algorithm, secret []byte) (string, error) {
	ts := time.Now().Unix() + s.Offset
	tsm, err := Sign(alg, secret, BuildTSBaseString(ts))
	if err != nil {
		return "", err
	}
	return CreateWWWAuthenticate(ChallengeFields{TS: ts, TSM: tsm}), nil
}

// VerifyTSM recomputes tsm over f.TS with alg/secret and compares it in
// fixed time against f.TSM, the client-side half of the WWW-Authenticate
// round-trip: a client uses this to confirm a challenge's tsm really came
// from the server holding the shared secret before trusting its ts.
func VerifyTSM(alg Algorithm, secret []byte, f ChallengeFields) (bool, error) {
	tsm, err := Sign(alg, secret, BuildTSBaseString(f.TS))
	if err != nil {
		return false, err
	}
	return ConstantTimeCompare(tsm, f.TSM), nil
}

func splitHostPort(r *http.Request) (host, port string) {
	host, port, err := net.SplitHostPort(r.Host)
	if err == nil {
		return host, port
	}
	if r.TLS != nil {
		return r.Host, "443"
	}
	return r.Host, "80"
}
