package hawk

import (
	"fmt"
	"strings"
)

// AuthFields is the parameter bag carried by a Hawk Authorization header.
// Empty fields are the empty string; TS of 0 marks "unset" on the
// construction path.
type AuthFields struct {
	ID    string
	MAC   string
	Hash  string
	Nonce string
	App   string
	Dlg   string
	Ext   string
	TS    int64
}

// ChallengeFields is the parameter bag carried by a WWW-Authenticate Hawk
// challenge: the server's timestamp and its HMAC.
type ChallengeFields struct {
	TS  int64
	TSM string
}

// ParseAuthorization parses an "Authorization: Hawk ..." header value. The
// scheme must be Hawk; unknown parameters are ignored for forward
// compatibility. id, mac, nonce and ts are required; their absence is
// reported as ErrParse.
func ParseAuthorization(value string) (AuthFields, error) {
	var f AuthFields
	var tsErr error
	var sawTS bool

	onScheme := func(scheme string) error {
		if scheme != "Hawk" {
			return fmt.Errorf("%w: %q", ErrBadScheme, scheme)
		}
		return nil
	}

	onParam := func(key, val string) error {
		// val is already unquoted by Parse; escape bytes are preserved
		// verbatim. UnescapeQuoted is the caller's opt-in, not applied here.
		switch key {
		case "id":
			f.ID = val
		case "mac":
			f.MAC = val
		case "hash":
			f.Hash = val
		case "nonce":
			f.Nonce = val
		case "app":
			f.App = val
		case "dlg":
			f.Dlg = val
		case "ext":
			f.Ext = val
		case "ts":
			ts, err := ParseTS(val)
			if err != nil {
				tsErr = err
				return err
			}
			f.TS = ts
			sawTS = true
		}
		return nil
	}

	if err := Parse(value, onScheme, onParam); err != nil {
		if tsErr != nil {
			return AuthFields{}, tsErr
		}
		return AuthFields{}, err
	}

	if f.ID == "" || f.MAC == "" || f.Nonce == "" || !sawTS {
		return AuthFields{}, fmt.Errorf("%w: missing required field(s) among id, mac, nonce, ts", ErrParse)
	}

	return f, nil
}

// ParseWWWAuthenticate parses a "WWW-Authenticate: Hawk ..." challenge. The
// scheme must be Hawk; ts and tsm are the only recognized keys.
func ParseWWWAuthenticate(value string) (ChallengeFields, error) {
	var f ChallengeFields
	var tsErr error

	onScheme := func(scheme string) error {
		if scheme != "Hawk" {
			return fmt.Errorf("%w: %q", ErrBadScheme, scheme)
		}
		return nil
	}

	onParam := func(key, val string) error {
		switch key {
		case "ts":
			ts, err := ParseTS(val)
			if err != nil {
				tsErr = err
				return err
			}
			f.TS = ts
		case "tsm":
			f.TSM = val
		}
		return nil
	}

	if err := Parse(value, onScheme, onParam); err != nil {
		if tsErr != nil {
			return ChallengeFields{}, tsErr
		}
		return ChallengeFields{}, err
	}
	if f.TSM == "" {
		return ChallengeFields{}, fmt.Errorf("%w: missing tsm", ErrParse)
	}
	return f, nil
}

// CalculateAuthorizationHeaderLength returns the exact byte length
// CreateAuthorizationHeader will write for f and uid, letting callers
// preallocate instead of growing a builder on the fly.
func CalculateAuthorizationHeaderLength(uid string, f AuthFields) int {
	n := len(`Hawk id="`) + len(uid) + len(`", ts="`) + decimalLen(f.TS) + len(`", nonce="`) + len(f.Nonce) + len(`"`)
	if f.Hash != "" {
		n += len(`, hash="`) + len(f.Hash) + len(`"`)
	}
	if f.Ext != "" {
		n += len(`, ext="`) + len(f.Ext) + len(`"`)
	}
	if f.App != "" {
		n += len(`, app="`) + len(f.App) + len(`"`)
		if f.Dlg != "" {
			n += len(`, dlg="`) + len(f.Dlg) + len(`"`)
		}
	}
	n += len(`, mac="`) + len(f.MAC) + len(`"`)
	return n
}

// CreateAuthorizationHeader serializes f into the fixed Hawk parameter order
// (id, ts, nonce, [hash,] [ext,] [app,] [dlg,] mac). Values are emitted
// verbatim inside quotes: the library does not escape them, so callers must
// supply already-safe values.
func CreateAuthorizationHeader(uid string, f AuthFields) string {
	var b strings.Builder
	b.Grow(CalculateAuthorizationHeaderLength(uid, f))
	fmt.Fprintf(&b, `Hawk id="%s", ts="%d", nonce="%s"`, uid, f.TS, f.Nonce)
	if f.Hash != "" {
		fmt.Fprintf(&b, `, hash="%s"`, f.Hash)
	}
	if f.Ext != "" {
		fmt.Fprintf(&b, `, ext="%s"`, f.Ext)
	}
	if f.App != "" {
		fmt.Fprintf(&b, `, app="%s"`, f.App)
		if f.Dlg != "" {
			fmt.Fprintf(&b, `, dlg="%s"`, f.Dlg)
		}
	}
	fmt.Fprintf(&b, `, mac="%s"`, f.MAC)
	return b.String()
}

// CreateWWWAuthenticate serializes a timestamp challenge as
// `Hawk ts="...", tsm="..."`.
func CreateWWWAuthenticate(f ChallengeFields) string {
	return fmt.Sprintf(`Hawk ts="%d", tsm="%s"`, f.TS, f.TSM)
}
