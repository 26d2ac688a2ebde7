package utils

// smallPrimes - Odd primes below 100, used as a fast rejection filter before trial division
var smallPrimes = [...]uint64{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31,
	37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97,
}

// firstTrialDivisor - First odd divisor not covered by smallPrimes
const firstTrialDivisor uint64 = 101

// IsEqual - Returns true if a and b are equal both in size and contents
func IsEqual(a, b []byte) bool {
	lenA := len(a)
	if lenA != len(b) {
		return false
	}

	for i := 0; i < lenA; i++ {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// NextPrime - Returns the smallest prime that is greater than or equal to n.
// Even candidates are bumped to the next odd number, then odd candidates are tried in turn until one passes
// the small prime filter and trial division up to its square root.
//   - n is the lower bound (inclusive) for the prime to find
func NextPrime(n uint64) (prime uint64) {
	if n <= 2 {
		prime = 2
		return
	}

	prime = n
	if prime%2 == 0 {
		prime++
	}

	for !isOddPrime(prime) {
		prime += 2
	}

	return
}

// IsPrime - Returns true if n is a prime number
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}

	return isOddPrime(n)
}

// isOddPrime - Primality test for odd n, first against the small prime table then by trial division
func isOddPrime(n uint64) bool {
	if n == 1 {
		return false
	}

	for _, p := range smallPrimes {
		if n%p == 0 {
			return n == p
		}
	}

	// d <= n/d rather than d*d <= n so candidates close to the uint64 limit can't overflow
	for d := firstTrialDivisor; d <= n/d; d += 2 {
		if n%d == 0 {
			return false
		}
	}

	return true
}

// AlignUp - Rounds offset up to the nearest multiple of align, which must be a power of two
func AlignUp(offset, align int) int {
	return (offset + align - 1) &^ (align - 1)
}
