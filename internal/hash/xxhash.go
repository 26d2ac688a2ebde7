package hash

import "github.com/cespare/xxhash/v2"

// XXHash64HashAlgorithm - Digest computed with xxHash64, the fastest option on long lines
type XXHash64HashAlgorithm struct{}

// NewXXHash64HashAlgorithm - Returns a pointer to a new XXHash64HashAlgorithm instance
func NewXXHash64HashAlgorithm() *XXHash64HashAlgorithm {
	return &XXHash64HashAlgorithm{}
}

// Digest - Returns the xxHash64 of text
func (X *XXHash64HashAlgorithm) Digest(text []byte) uint64 {
	return xxhash.Sum64(text)
}

// Name - Returns the algorithm name
func (X *XXHash64HashAlgorithm) Name() string {
	return "xxhash64"
}
