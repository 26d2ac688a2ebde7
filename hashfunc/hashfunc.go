package hashfunc

// HashAlgorithm - Interface that permits an implementation using the CountMap to supply a custom digest
// function suited for its particular distribution of strings.
//
// A count map calls Digest exactly once per distinct string and stores the result with the entry, resizing
// reuses the stored digest. The same algorithm must therefore be used for the whole lifetime of one count map.
type HashAlgorithm interface {
	// Digest - Given a string it returns its digest. The function must be pure and deterministic; two calls
	// with equal bytes must return the same value. Digests are reduced modulo the (prime) bucket count, so the
	// full width of the value should be well distributed.
	Digest(text []byte) uint64

	// Name - Returns a short identifier of the algorithm, used in statistics and diagnostics
	Name() string
}
