package v1

import "io"

// SetRandReaderForTesting overrides the nonce and PSS salt source. It
// returns a function that restores the previous reader. Since this package
// is internal, this hook cannot be reached by external code.
func SetRandReaderForTesting(r io.Reader) func() {
	original := randReader
	randReader = r
	return func() { randReader = original }
}
