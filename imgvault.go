// Package imgvault implements the duplicate-detection engine behind the
// ImgVault archiver: content fingerprinting (exact digest plus three
// perceptual hashes), CDN-aware URL normalization, and a phased matcher
// that classifies why a newly captured image duplicates an archived one.
//
// The engine is pure: it operates on already-resident bytes and an
// already-loaded corpus snapshot. Fetching images and persisting records
// belong to the callers (see internal/api and internal/database).
package imgvault

// Default comparison thresholds, expressed as maximum Hamming distance per
// perceptual hash. Tuned for recompressed and lightly resized re-uploads.
const (
	DefaultPHashThreshold = 100 // of 1024 bits, ~10% tolerance
	DefaultAHashThreshold = 15  // of 64 bits, ~23% tolerance
	DefaultDHashThreshold = 20  // of 64 bits, ~31% tolerance

	// DefaultMatchQuorum is how many of the three perceptual hashes must
	// independently agree before an entry counts as a visual duplicate.
	// 1-of-3 favors recall; strict callers set 2.
	DefaultMatchQuorum = 1
)

// MatcherConfig tunes duplicate detection. The zero value is not useful;
// start from DefaultMatcherConfig and override fields as needed.
type MatcherConfig struct {
	PHashThreshold int // max Hamming distance for the 1024-bit pHash
	AHashThreshold int // max Hamming distance for the 64-bit aHash
	DHashThreshold int // max Hamming distance for the 64-bit dHash

	// MatchQuorum is the minimum number of within-threshold hash votes
	// (out of three) required to declare a visual duplicate. Clamped to
	// [1, 3] by NewMatcher.
	MatchQuorum int

	// KeepFacebookIDParams controls Facebook-class URL normalization.
	// When false, the entire query string is dropped (origin + path only).
	// When true, the stable resource-id parameters (fbid, id, set) are
	// retained and everything else is dropped. Both behaviors exist in
	// deployed archives; the choice is a product setting, not a default
	// this engine should guess.
	KeepFacebookIDParams bool
}

// DefaultMatcherConfig returns the engine defaults documented above.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		PHashThreshold: DefaultPHashThreshold,
		AHashThreshold: DefaultAHashThreshold,
		DHashThreshold: DefaultDHashThreshold,
		MatchQuorum:    DefaultMatchQuorum,
	}
}

// ProgressFunc receives coarse human-readable status lines during a corpus
// scan. It is fire-and-forget: the matcher never blocks on it and ignores
// anything it does.
type ProgressFunc func(message string)
