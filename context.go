package hawk

import "time"

// Context is the per-operation working set: algorithm + shared secret, the
// request metadata the base string is built from, a clock offset for
// client-side use, and a pluggable allocator. A Context is not safe for
// concurrent mutation; distinct Context values may be used concurrently from
// different goroutines.
type Context struct {
	lastError

	Algorithm Algorithm
	Password  []byte

	Method string
	Path   string
	Host   string
	Port   string

	// Offset is added to time.Now().Unix() by Now, letting a client correct
	// for a known server clock skew without touching the system clock.
	Offset int64

	Alloc Allocator
}

// Now returns the client-side notion of "now": wall clock plus Offset.
func (c *Context) Now() int64 {
	return time.Now().Unix() + c.Offset
}

func (c *Context) allocator() Allocator {
	if c.Alloc != nil {
		return c.Alloc
	}
	return DefaultAllocator
}

// BuildAuthBaseString builds the request base string for ts/nonce/hash/ext/
// app/dlg against this Context's method/path/host/port.
func (c *Context) BuildAuthBaseString(ts int64, nonce, hashVal, ext, app, dlg string) (string, error) {
	base, err := BuildAuthBaseString(c.allocator(), ts, nonce, c.Method, c.Path, c.Host, c.Port, hashVal, ext, app, dlg)
	if err != nil {
		return "", c.lastError.set(err, err.Error())
	}
	return base, nil
}

// Sign computes the HMAC over base using this Context's algorithm and
// password.
func (c *Context) Sign(base string) (string, error) {
	mac, err := Sign(c.Algorithm, c.Password, base)
	if err != nil {
		return "", c.lastError.set(err, err.Error())
	}
	return mac, nil
}
