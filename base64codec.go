package hawk

import (
	"encoding/base64"
	"fmt"
)

// Base64 codec. Hawk only ever needs standard padded base64 for MAC/hash
// values, but the URL-safe variant is exposed for callers embedding Hawk
// material in URLs (e.g. bewit-style extensions, out of scope here but a
// natural extension point).

// EncodedLen returns the exact number of bytes Encode writes for n input
// bytes, including padding.
func EncodedLen(n int) int {
	return base64.StdEncoding.EncodedLen(n)
}

// DecodedLen returns the maximum number of bytes Decode can produce from n
// encoded bytes.
func DecodedLen(n int) int {
	return base64.StdEncoding.DecodedLen(n)
}

// Encode fills dst with the standard base64 encoding of src. dst must be at
// least EncodedLen(len(src)) bytes; Encode is total on a correctly sized
// buffer.
func Encode(dst, src []byte) int {
	base64.StdEncoding.Encode(dst, src)
	return EncodedLen(len(src))
}

// EncodeString returns the standard base64 encoding of src.
func EncodeString(src []byte) string {
	return base64.StdEncoding.EncodeToString(src)
}

// Decode decodes src into dst, returning the number of bytes written. Decoding
// is strict: unknown alphabet characters, misaligned length, or an invalid
// padding count fail with ErrBase64. CR and LF bytes are skipped, as
// encoding/base64 does.
func Decode(dst, src []byte) (int, error) {
	n, err := base64.StdEncoding.Decode(dst, src)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBase64, err)
	}
	return n, nil
}

// DecodeString decodes a standard base64 string.
func DecodeString(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBase64, err)
	}
	return b, nil
}

// URL-safe variants, same exact-length contract.

func EncodedLenURL(n int) int { return base64.URLEncoding.EncodedLen(n) }
func DecodedLenURL(n int) int { return base64.URLEncoding.DecodedLen(n) }

func EncodeURLString(src []byte) string {
	return base64.URLEncoding.EncodeToString(src)
}

func DecodeURLString(s string) ([]byte, error) {
	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBase64, err)
	}
	return b, nil
}
