package hawk

import (
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
)

// Algorithm is an immutable record pairing a Hawk algorithm name with the
// hash constructor and MAC length it implies. The two predefined instances,
// SHA256 and SHA1, are the only values the registry resolves by name; they
// carry no state and are safe to share across goroutines.
type Algorithm struct {
	Name string
	New  func() hash.Hash
	Size int
}

// Predefined algorithm records. LookupAlgorithm resolves them by name; these
// vars exist so callers who already know which one they want can skip the
// lookup.
var (
	SHA256 = Algorithm{Name: "sha256", New: sha256.New, Size: sha256.Size}
	SHA1   = Algorithm{Name: "sha1", New: sha1.New, Size: sha1.Size}
)

var algorithmRegistry = map[string]Algorithm{
	SHA256.Name: SHA256,
	SHA1.Name:   SHA1,
}

// LookupAlgorithm resolves an algorithm by its case-sensitive name. Unknown
// names fail with ErrUnknownAlgorithm.
func LookupAlgorithm(name string) (Algorithm, error) {
	alg, ok := algorithmRegistry[name]
	if !ok {
		return Algorithm{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return alg, nil
}
