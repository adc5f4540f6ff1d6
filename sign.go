package hawk

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// MaxNonceBytes is the number of random bytes drawn for the default nonce,
// hex-encoded into a 12-character string.
const MaxNonceBytes = 6

// Sign computes HMAC(secret, base) with alg and returns it base64-encoded,
// the MAC that goes into the Authorization/WWW-Authenticate "mac"/"tsm"
// parameter. It is deterministic: the same alg, secret and base always
// produce the same output.
func Sign(alg Algorithm, secret []byte, base string) (string, error) {
	if alg.New == nil {
		return "", fmt.Errorf("%w: nil algorithm", ErrUnknownAlgorithm)
	}
	mac := hmac.New(alg.New, secret)
	if _, err := mac.Write([]byte(base)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return EncodeString(mac.Sum(nil)), nil
}

// ConstantTimeCompare reports whether a and b are equal using a fixed-time
// byte comparator: unequal lengths short-circuit to false (length itself is
// not secret), otherwise every byte is compared without branching on value.
// It delegates to crypto/subtle rather than rolling its own.
func ConstantTimeCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// NewNonce draws MaxNonceBytes bytes from a cryptographically strong source
// and hex-encodes them. It fails with ErrCrypto if the source cannot be
// drawn from.
func NewNonce() (string, error) {
	return NewNonceN(MaxNonceBytes)
}

// NewNonceN draws n random bytes and hex-encodes them. n <= 0 falls back to
// MaxNonceBytes.
func NewNonceN(n int) (string, error) {
	if n <= 0 {
		n = MaxNonceBytes
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return hex.EncodeToString(b), nil
}

// NewNonceUUID returns a UUIDv7-based nonce instead of the hex/crypto-rand
// default, for clients that want time-ordered, globally collision-resistant
// nonces across a distributed fleet. UUIDv7 embeds a millisecond timestamp,
// so it is not a drop-in hardness equivalent to MaxNonceBytes of CSPRNG
// output; callers with strict nonce-entropy requirements should keep the
// default NewNonce.
func NewNonceUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return id.String(), nil
}
