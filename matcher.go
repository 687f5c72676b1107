package imgvault

import "fmt"

// MatchType classifies why a corpus entry was flagged as a duplicate.
type MatchType string

const (
	MatchContext MatchType = "context" // same normalized source + page URL pair
	MatchExact   MatchType = "exact"   // byte-identical content digest
	MatchVisual  MatchType = "visual"  // perceptual hashes within threshold quorum
)

// HashVote is the per-hash outcome of a visual comparison.
type HashVote struct {
	Distance   int     `json:"distance"`
	Matched    bool    `json:"matched"`
	Similarity float64 `json:"similarity"`
}

// MatchRecord is one flagged corpus entry. Similarity and HashVotes are
// populated for visual matches only.
type MatchRecord struct {
	Type       MatchType           `json:"match_type"`
	MatchedID  string              `json:"matched_id"`
	Reason     string              `json:"reason"`
	Similarity float64             `json:"similarity,omitempty"`
	HashVotes  map[string]HashVote `json:"hash_votes,omitempty"`
}

// CorpusEntry pairs an archived item's opaque store identifier with its
// fingerprint. Entries with missing hash fields participate in whatever
// phases their remaining fields allow.
type CorpusEntry struct {
	ID          string
	Fingerprint Fingerprint
}

// Matcher runs phased duplicate detection with a fixed configuration.
type Matcher struct {
	cfg MatcherConfig
}

// NewMatcher builds a Matcher. The quorum is clamped to [1, 3].
func NewMatcher(cfg MatcherConfig) *Matcher {
	if cfg.MatchQuorum < 1 {
		cfg.MatchQuorum = 1
	}
	if cfg.MatchQuorum > 3 {
		cfg.MatchQuorum = 3
	}
	return &Matcher{cfg: cfg}
}

// Config returns the configuration the matcher was built with.
func (m *Matcher) Config() MatcherConfig { return m.cfg }

// progressInterval is how many corpus entries pass between progress
// callbacks within a phase.
const progressInterval = 64

// Check compares a candidate fingerprint against a read-only corpus
// snapshot and reports every qualifying match, discovery order preserved.
//
// Three phases run exhaustively over the whole corpus: context (normalized
// URL pair), exact (content digest), then visual (perceptual hash quorum).
// An entry flagged by an earlier phase is excluded from later ones, so each
// corpus entry appears at most once, attributed to the strongest signal.
//
// progress may be nil. A malformed candidate fails with
// *InvalidFingerprintError before any phase runs; malformed corpus entries
// merely sit out the phases they lack fields for.
func (m *Matcher) Check(cand *Fingerprint, corpus []CorpusEntry, progress ProgressFunc) (*MatchReport, error) {
	if cand == nil {
		return nil, &InvalidFingerprintError{Field: "fingerprint", Reason: "nil candidate"}
	}
	if cand.ExactDigest == "" {
		return nil, &InvalidFingerprintError{Field: "exactDigest", Reason: "empty"}
	}

	report := &MatchReport{AllMatches: []MatchRecord{}}
	claimed := make([]bool, len(corpus))

	m.contextPhase(cand, corpus, claimed, report, progress)
	m.exactPhase(cand, corpus, claimed, report, progress)
	m.visualPhase(cand, corpus, claimed, report, progress)

	report.IsDuplicate = len(report.AllMatches) > 0
	return report, nil
}

func (m *Matcher) contextPhase(cand *Fingerprint, corpus []CorpusEntry, claimed []bool, report *MatchReport, progress ProgressFunc) {
	notifyPhase(progress, "context", len(corpus))
	if cand.SourceURL == "" && cand.PageURL == "" {
		// Local files carry no capture context; nothing to compare.
		return
	}
	for i, entry := range corpus {
		notifyEntry(progress, "context", i, len(corpus))
		if m.cfg.EqualURLs(cand.SourceURL, entry.Fingerprint.SourceURL) &&
			m.cfg.EqualURLs(cand.PageURL, entry.Fingerprint.PageURL) {
			record(report, claimed, i, MatchRecord{
				Type:      MatchContext,
				MatchedID: entry.ID,
				Reason:    "same source URL + page URL",
			})
		}
	}
}

func (m *Matcher) exactPhase(cand *Fingerprint, corpus []CorpusEntry, claimed []bool, report *MatchReport, progress ProgressFunc) {
	notifyPhase(progress, "exact", len(corpus))
	for i, entry := range corpus {
		notifyEntry(progress, "exact", i, len(corpus))
		if claimed[i] || entry.Fingerprint.ExactDigest == "" {
			continue
		}
		if entry.Fingerprint.ExactDigest == cand.ExactDigest {
			record(report, claimed, i, MatchRecord{
				Type:      MatchExact,
				MatchedID: entry.ID,
				Reason:    "identical file",
			})
		}
	}
}

func (m *Matcher) visualPhase(cand *Fingerprint, corpus []CorpusEntry, claimed []bool, report *MatchReport, progress ProgressFunc) {
	notifyPhase(progress, "visual", len(corpus))
	for i, entry := range corpus {
		notifyEntry(progress, "visual", i, len(corpus))
		if claimed[i] {
			continue
		}
		if rec, ok := m.compareVisual(cand, entry); ok {
			record(report, claimed, i, rec)
		}
	}
}

// compareVisual votes the three perceptual hashes of one corpus entry
// against the candidate. Hashes missing on either side, or with mismatched
// lengths, are skipped rather than voted.
func (m *Matcher) compareVisual(cand *Fingerprint, entry CorpusEntry) (MatchRecord, bool) {
	pairs := []struct {
		name      string
		a, b      string
		threshold int
	}{
		{"phash", cand.PHash, entry.Fingerprint.PHash, m.cfg.PHashThreshold},
		{"ahash", cand.AHash, entry.Fingerprint.AHash, m.cfg.AHashThreshold},
		{"dhash", cand.DHash, entry.Fingerprint.DHash, m.cfg.DHashThreshold},
	}

	votes := 0
	compared := 0
	simSum := 0.0
	hashVotes := make(map[string]HashVote, len(pairs))

	for _, p := range pairs {
		if p.a == "" || p.b == "" {
			continue
		}
		dist := HammingDistance(p.a, p.b)
		if dist == DistanceIncomparable {
			continue
		}
		sim := HashSimilarity(p.a, p.b)
		matched := dist <= p.threshold
		if matched {
			votes++
		}
		compared++
		simSum += sim
		hashVotes[p.name] = HashVote{Distance: dist, Matched: matched, Similarity: sim}
	}

	if compared == 0 || votes < m.cfg.MatchQuorum {
		return MatchRecord{}, false
	}
	return MatchRecord{
		Type:       MatchVisual,
		MatchedID:  entry.ID,
		Reason:     fmt.Sprintf("perceptual match (%d of %d hashes within threshold)", votes, compared),
		Similarity: simSum / float64(compared),
		HashVotes:  hashVotes,
	}, true
}

func record(report *MatchReport, claimed []bool, i int, rec MatchRecord) {
	claimed[i] = true
	report.AllMatches = append(report.AllMatches, rec)
	saved := rec
	switch rec.Type {
	case MatchContext:
		if report.FirstContextMatch == nil {
			report.FirstContextMatch = &saved
		}
	case MatchExact:
		if report.FirstExactMatch == nil {
			report.FirstExactMatch = &saved
		}
	case MatchVisual:
		if report.FirstVisualMatch == nil {
			report.FirstVisualMatch = &saved
		}
	}
}

func notifyPhase(progress ProgressFunc, phase string, total int) {
	if progress == nil {
		return
	}
	progress(fmt.Sprintf("%s scan: comparing against %d archived items", phase, total))
}

func notifyEntry(progress ProgressFunc, phase string, i, total int) {
	if progress == nil || i == 0 || i%progressInterval != 0 {
		return
	}
	progress(fmt.Sprintf("%s scan: %d/%d", phase, i, total))
}
