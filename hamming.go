package imgvault

// DistanceIncomparable is returned by HammingDistance for hashes of
// different lengths. Such pairs can never match; they are not an error.
const DistanceIncomparable = -1

// HammingDistance counts differing positions between two equal-length
// bitstrings. Mismatched lengths yield DistanceIncomparable.
func HammingDistance(a, b string) int {
	if len(a) != len(b) || len(a) == 0 {
		return DistanceIncomparable
	}
	dist := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			dist++
		}
	}
	return dist
}

// HashSimilarity expresses the Hamming distance between two bitstrings as a
// percentage of identical bits. Incomparable pairs score 0.
func HashSimilarity(a, b string) float64 {
	dist := HammingDistance(a, b)
	if dist == DistanceIncomparable {
		return 0
	}
	return float64(len(a)-dist) / float64(len(a)) * 100
}
