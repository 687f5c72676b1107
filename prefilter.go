package imgvault

import (
	"image"
	"sync"

	"github.com/corona10/goimagehash"
)

// sessionDistance is the maximum difference-hash Hamming distance below
// which two captures from the same browsing session are treated as the
// same image.
const sessionDistance = 10

// SessionFilter is a cheap in-memory prescreen for repeated captures within
// one browsing session, run before the full corpus scan. Its hashes are
// never persisted, so it is free to use a different hash family than the
// corpus fingerprints. Safe for concurrent use.
type SessionFilter struct {
	mu     sync.Mutex
	hashes []*goimagehash.ImageHash
}

// Seen reports whether img is perceptually identical to an image already
// passed through this filter. Unseen images are remembered. Hashing
// failures accept the image (graceful degradation: a miss here only means
// the corpus scan does the work instead).
func (f *SessionFilter) Seen(img image.Image) bool {
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, h := range f.hashes {
		dist, err := hash.Distance(h)
		if err == nil && dist < sessionDistance {
			return true
		}
	}

	f.hashes = append(f.hashes, hash)
	return false
}

// SeenBytes decodes raw bytes and applies Seen. Undecodable input is
// accepted.
func (f *SessionFilter) SeenBytes(data []byte) bool {
	img, err := decodeImage(data)
	if err != nil {
		return false
	}
	return f.Seen(img)
}

// Reset forgets all remembered hashes, starting a fresh session.
func (f *SessionFilter) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hashes = nil
}
