package hawk

import (
	"fmt"
	"strconv"
	"strings"
)

// A base string that fits in staticBufCap is built on a stack-local array;
// one that needs more, up to hardBufCap, is satisfied from the Allocator and
// released on every exit path; anything past hardBufCap is refused outright
// as a defense against oversized-URL denial of service.
const (
	staticBufCap = 512
	hardBufCap   = 2048
)

const (
	headerPreamble = "hawk.1.header"
	tsPreamble     = "hawk.1.ts"
)

// AuthBaseStringLen returns the exact byte length BuildAuthBaseString will
// produce for the given fields, without allocating. Calling it before
// building lets the caller decide the buffer strategy up front.
func AuthBaseStringLen(ts int64, nonce, method, path, host, port, hashVal, ext, app, dlg string) int {
	n := len(headerPreamble) + 1
	n += decimalLen(ts) + 1
	n += len(nonce) + 1
	n += len(method) + 1
	n += len(path) + 1
	n += len(host) + 1
	n += len(port) + 1
	n += len(hashVal) + 1
	n += len(ext) + 1
	if app != "" {
		n += len(app) + 1
		n += len(dlg) + 1
	}
	return n
}

// BuildAuthBaseString constructs the canonical Hawk request base string. It
// fails with ErrBufferTooLarge if the result would exceed hardBufCap; between
// staticBufCap and hardBufCap it borrows a buffer from alloc and frees it
// before returning, on every path including errors.
func BuildAuthBaseString(alloc Allocator, ts int64, nonce, method, path, host, port, hashVal, ext, app, dlg string) (string, error) {
	if alloc == nil {
		alloc = DefaultAllocator
	}
	need := AuthBaseStringLen(ts, nonce, method, path, host, port, hashVal, ext, app, dlg)
	if need > hardBufCap {
		return "", fmt.Errorf("%w: %d bytes requested, cap is %d", ErrBufferTooLarge, need, hardBufCap)
	}

	if need <= staticBufCap {
		var static [staticBufCap]byte
		n := writeAuthBaseString(static[:0], ts, nonce, method, path, host, port, hashVal, ext, app, dlg)
		return string(static[:n]), nil
	}

	buf := alloc.Alloc(need)
	defer alloc.Free(buf)
	n := writeAuthBaseString(buf[:0], ts, nonce, method, path, host, port, hashVal, ext, app, dlg)
	return string(buf[:n]), nil
}

func writeAuthBaseString(dst []byte, ts int64, nonce, method, path, host, port, hashVal, ext, app, dlg string) int {
	dst = append(dst, headerPreamble...)
	dst = append(dst, '\n')
	dst = appendDecimal(dst, ts)
	dst = append(dst, '\n')
	dst = append(dst, nonce...)
	dst = append(dst, '\n')
	dst = append(dst, method...)
	dst = append(dst, '\n')
	dst = append(dst, path...)
	dst = append(dst, '\n')
	dst = appendLower(dst, host)
	dst = append(dst, '\n')
	dst = append(dst, port...)
	dst = append(dst, '\n')
	dst = append(dst, hashVal...)
	dst = append(dst, '\n')
	dst = append(dst, ext...)
	dst = append(dst, '\n')
	if app != "" {
		dst = append(dst, app...)
		dst = append(dst, '\n')
		dst = append(dst, dlg...)
		dst = append(dst, '\n')
	}
	return len(dst)
}

// TSBaseStringLen returns the exact length of the timestamp base string used
// to produce WWW-Authenticate's tsm.
func TSBaseStringLen(ts int64) int {
	return len(tsPreamble) + 1 + decimalLen(ts) + 1
}

// BuildTSBaseString constructs "hawk.1.ts\n<ts>\n", the input to the tsm MAC.
// It is always well under staticBufCap for any int64 ts, so it never reaches
// for the allocator, but the calculate-then-populate contract is kept for
// symmetry with BuildAuthBaseString.
func BuildTSBaseString(ts int64) string {
	need := TSBaseStringLen(ts)
	var buf [64]byte
	dst := buf[:0]
	dst = append(dst, tsPreamble...)
	dst = append(dst, '\n')
	dst = appendDecimal(dst, ts)
	dst = append(dst, '\n')
	_ = need
	return string(dst)
}

// appendDecimal appends the decimal representation of v, negative values
// included, matching decimalLen's count exactly.
func appendDecimal(dst []byte, v int64) []byte {
	return strconv.AppendInt(dst, v, 10)
}

// decimalLen returns the number of bytes appendDecimal writes for v,
// including a leading '-' for negative values, without formatting it.
func decimalLen(v int64) int {
	if v == 0 {
		return 1
	}
	neg := v < 0
	u := uint64(v)
	if neg {
		u = uint64(-(v + 1)) + 1
	}
	n := 0
	for u > 0 {
		u /= 10
		n++
	}
	if neg {
		n++
	}
	return n
}

func appendLower(dst []byte, s string) []byte {
	if !hasUpper(s) {
		return append(dst, s...)
	}
	return append(dst, strings.ToLower(s)...)
}

func hasUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}
