package hash

const (
	fnv32OffsetBasis uint32 = 2166136261
	fnv32Prime       uint32 = 16777619
	fnv64OffsetBasis uint64 = 14695981039346656037
	fnv64Prime       uint64 = 1099511628211
)

// FNV32HashAlgorithm - 32 bit FNV fold where every byte first multiplies the running value by the FNV prime and
// is then xor:ed in. This is the internal default.
type FNV32HashAlgorithm struct{}

// NewFNV32HashAlgorithm - Returns a pointer to a new FNV32HashAlgorithm instance
func NewFNV32HashAlgorithm() *FNV32HashAlgorithm {
	return &FNV32HashAlgorithm{}
}

// Digest - Returns the 32 bit digest of text, zero extended
func (F *FNV32HashAlgorithm) Digest(text []byte) uint64 {
	h := fnv32OffsetBasis
	for _, c := range text {
		h = (h * fnv32Prime) ^ uint32(c)
	}

	return uint64(h)
}

// Name - Returns the algorithm name
func (F *FNV32HashAlgorithm) Name() string {
	return "fnv32"
}

// FNV64HashAlgorithm - The 64 bit variant of FNV32HashAlgorithm, fewer collisions at the cost of slower hashing
type FNV64HashAlgorithm struct{}

// NewFNV64HashAlgorithm - Returns a pointer to a new FNV64HashAlgorithm instance
func NewFNV64HashAlgorithm() *FNV64HashAlgorithm {
	return &FNV64HashAlgorithm{}
}

// Digest - Returns the 64 bit digest of text
func (F *FNV64HashAlgorithm) Digest(text []byte) uint64 {
	h := fnv64OffsetBasis
	for _, c := range text {
		h = (h * fnv64Prime) ^ uint64(c)
	}

	return h
}

// Name - Returns the algorithm name
func (F *FNV64HashAlgorithm) Name() string {
	return "fnv64"
}

// FNV1a64HashAlgorithm - 64 bit FNV-1a, xor before multiply, which mixes the last byte better than the FNV fold
type FNV1a64HashAlgorithm struct{}

// NewFNV1a64HashAlgorithm - Returns a pointer to a new FNV1a64HashAlgorithm instance
func NewFNV1a64HashAlgorithm() *FNV1a64HashAlgorithm {
	return &FNV1a64HashAlgorithm{}
}

// Digest - Returns the 64 bit digest of text
func (F *FNV1a64HashAlgorithm) Digest(text []byte) uint64 {
	h := fnv64OffsetBasis
	for _, c := range text {
		h = (h ^ uint64(c)) * fnv64Prime
	}

	return h
}

// Name - Returns the algorithm name
func (F *FNV1a64HashAlgorithm) Name() string {
	return "fnv1a64"
}
