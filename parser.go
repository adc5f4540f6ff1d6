package hawk

import (
	"fmt"
	"strings"
)

// Parse tokenizes an HTTP authentication header value of the form
//
//	value := 1*SP? scheme 1*SP param *( OWS "," OWS param ) OWS
//	param  := key OWS "=" OWS ( quoted-string | token )
//
// It is a small explicit state machine (Start -> Scheme -> WS -> ParamKey ->
// BeforeEq -> AfterEq -> Token|Quoted -> AfterVal -> Comma -> ParamKey...)
// with no internal allocation: every key and value handed to onParam is a
// substring of value, sharing its backing array the way a borrowed slice
// would in a language without a garbage collector.
//
// onScheme is invoked exactly once. onParam is invoked once per key=value
// pair, in source order. Quoted values retain their backslash escapes
// verbatim; use UnescapeQuoted to strip them. A header with a scheme but no
// parameters is accepted by the parser itself (required-field enforcement is
// the caller's job, per the Authorization/WWW-Authenticate façades).
func Parse(value string, onScheme func(scheme string) error, onParam func(key, val string) error) error {
	i, n := 0, len(value)

	for i < n && isSpace(value[i]) {
		i++
	}
	start := i
	for i < n && isTokenChar(value[i]) {
		i++
	}
	if i == start {
		return fmt.Errorf("%w: missing scheme token", ErrParse)
	}
	scheme := value[start:i]
	if onScheme != nil {
		if err := onScheme(scheme); err != nil {
			return err
		}
	}

	if i == n {
		return nil
	}

	wsStart := i
	for i < n && isSpace(value[i]) {
		i++
	}
	if i == wsStart {
		return fmt.Errorf("%w: expected whitespace after scheme", ErrParse)
	}

	for {
		for i < n && isSpace(value[i]) {
			i++
		}
		if i >= n {
			break
		}

		keyStart := i
		for i < n && isTokenChar(value[i]) {
			i++
		}
		if i == keyStart {
			return fmt.Errorf("%w: expected parameter name", ErrParse)
		}
		key := value[keyStart:i]

		for i < n && isSpace(value[i]) {
			i++
		}
		if i >= n || value[i] != '=' {
			return fmt.Errorf("%w: expected '=' after %q", ErrParse, key)
		}
		i++
		for i < n && isSpace(value[i]) {
			i++
		}

		var val string
		if i < n && value[i] == '"' {
			i++
			valStart := i
			closed := false
			for i < n {
				if value[i] == '\\' && i+1 < n {
					i += 2
					continue
				}
				if value[i] == '"' {
					closed = true
					break
				}
				i++
			}
			if !closed {
				return fmt.Errorf("%w: unclosed quoted string for %q", ErrParse, key)
			}
			val = value[valStart:i]
			i++
		} else {
			valStart := i
			for i < n && isTokenChar(value[i]) {
				i++
			}
			if i == valStart {
				return fmt.Errorf("%w: expected value for %q", ErrParse, key)
			}
			val = value[valStart:i]
		}

		if onParam != nil {
			if err := onParam(key, val); err != nil {
				return err
			}
		}

		for i < n && isSpace(value[i]) {
			i++
		}
		if i >= n {
			break
		}
		if value[i] != ',' {
			return fmt.Errorf("%w: expected ',' or end of input, found %q", ErrParse, value[i])
		}
		i++
		for i < n && isSpace(value[i]) {
			i++
		}
		if i >= n {
			return fmt.Errorf("%w: trailing comma", ErrParse)
		}
	}

	return nil
}

// UnescapeQuoted strips backslash escapes from a quoted-string value returned
// by Parse. The parser itself never does this; it is a copying operation and
// the caller decides whether it is needed.
func UnescapeQuoted(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func isTokenChar(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}
