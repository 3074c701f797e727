package dhash

import "github.com/cespare/xxhash/v2"

const (
	// PrimeA and PrimeB are the bases of the two polynomial hashes. Both
	// must be larger than 128.
	PrimeA = 193
	PrimeB = 389
)

// Hasher supplies the two independent hash values that drive the double
// hashing probe sequence of a table holding size slots.
//
// primary must lie in [0, size) and selects the first slot probed. step
// must lie in [0, size-1); the table advances by step+1 on every attempt,
// which keeps the stride coprime with the prime table size.
type Hasher interface {
	Hash(key string, size int) (primary, step int)
}

// PolynomialHasher hashes a key as a base-PrimeA and a base-PrimeB
// polynomial over its bytes. It is the default Hasher.
type PolynomialHasher struct{}

// Hash implements Hasher.
func (PolynomialHasher) Hash(key string, size int) (int, int) {
	return primitiveHash(key, PrimeA, size), primitiveHash(key, PrimeB, size-1)
}

// primitiveHash evaluates sum(prime^(len-1-i) * s[i]) mod modulus with
// Horner's rule, reducing after every term so nothing overflows.
func primitiveHash(s string, prime, modulus int) int {
	if modulus <= 1 {
		return 0
	}
	m := uint64(modulus)
	p := uint64(prime) % m
	var h uint64
	for i := 0; i < len(s); i++ {
		h = (h*p + uint64(s[i])) % m
	}
	return int(h)
}

// XXHasher derives both values from a single xxhash digest of the key. It
// spreads long keys with shared prefixes better than PolynomialHasher.
type XXHasher struct{}

// Hash implements Hasher.
func (XXHasher) Hash(key string, size int) (int, int) {
	h1 := xxhash.Sum64String(key)
	// SplitMix64 finaliser
	h2 := h1
	h2 ^= h2 >> 33
	h2 *= 0xff51afd7ed558ccd
	h2 ^= h2 >> 33
	h2 *= 0xc4ceb9fe1a85ec53
	h2 ^= h2 >> 33
	return int(h1 % uint64(size)), int(h2 % uint64(size-1))
}

// probeSeq is the double hashing sequence of one key in one table.
type probeSeq struct {
	start  int
	stride int
	size   int
}

func newProbeSeq(h Hasher, key string, size int) probeSeq {
	primary, step := h.Hash(key, size)
	return probeSeq{
		start:  primary % size,
		stride: step%(size-1) + 1,
		size:   size,
	}
}

// at returns the slot index visited on the given attempt.
func (p probeSeq) at(attempt int) int {
	return int((uint64(p.start) + uint64(attempt)*uint64(p.stride)) % uint64(p.size))
}
