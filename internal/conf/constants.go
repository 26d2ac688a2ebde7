package conf

import "math"

// DefaultInitialSize - Number of buckets a new count map starts with (a prime)
const DefaultInitialSize uint32 = 1031

// DefaultMaxTableSize - Upper bound for the bucket array, 2^31-1 is prime and keeps every entry index within int32
const DefaultMaxTableSize uint32 = math.MaxInt32

// LoadFactorNumerator - Together with LoadFactorDenominator it gives the max load factor of 0.75
const LoadFactorNumerator uint64 = 3

// LoadFactorDenominator - See LoadFactorNumerator
const LoadFactorDenominator uint64 = 4

// GrowthFactor - The bucket array is grown to the next prime above size * GrowthFactor
const GrowthFactor uint64 = 2

// DefaultPoolSize - Size of each arena pool block
const DefaultPoolSize int = 64 * 1024

// DefaultPooledThreshold - Strings up to this length are carved out of pool blocks, longer ones get their own allocation
const DefaultPooledThreshold int = 64

// DefaultHashAlgorithm - Name of the internal hash algorithm used when none is given
const DefaultHashAlgorithm = "fnv32"
