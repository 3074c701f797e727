package dhash

// IsPrime reports whether x is prime using trial division up to √x.
func IsPrime(x int) bool {
	if x < 2 {
		return false
	}
	for i := 2; i*i <= x; i++ {
		if x%i == 0 {
			return false
		}
	}
	return true
}

// NextPrime returns the smallest prime greater than or equal to x.
func NextPrime(x int) int {
	for !IsPrime(x) {
		x++
	}
	return x
}
