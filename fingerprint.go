package imgvault

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/sync/errgroup"
)

// Perceptual hash grid dimensions. Bit lengths follow from these: the mean
// threshold hashes carry one bit per cell, the gradient hash one bit per
// horizontal neighbor pair.
const (
	pHashGridSize = 32 // 32×32 → 1024 bits
	aHashGridSize = 8  // 8×8 → 64 bits
	dHashGridW    = 9  // 9×8 → 64 bits
	dHashGridH    = 8
)

// Fingerprint identifies archived content three ways: an exact byte digest,
// three perceptual hashes stored as '0'/'1' bitstrings, and the capture
// context URLs. Bitstrings keep the hashes directly comparable with the
// values persisted by every extension version to date.
type Fingerprint struct {
	ExactDigest string // hex SHA-256 of the raw bytes

	PHash string // 1024 bits, 32×32 mean threshold
	AHash string // 64 bits, 8×8 mean threshold
	DHash string // 64 bits, 9×8 horizontal gradient

	Width    int
	Height   int
	ByteSize int64

	SourceURL string // direct image URL, empty for locally supplied files
	PageURL   string // page the image was captured from
}

// Extract fingerprints raw image bytes. The digest and the three perceptual
// hashes are independent and computed concurrently; the first failure wins
// and aborts the whole extraction. The URLs are carried through untouched
// and never influence any hash.
func Extract(data []byte, sourceURL, pageURL string) (*Fingerprint, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	fp := &Fingerprint{
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		ByteSize:  int64(len(data)),
		SourceURL: sourceURL,
		PageURL:   pageURL,
	}

	var g errgroup.Group
	g.Go(func() error {
		sum := sha256.Sum256(data)
		fp.ExactDigest = hex.EncodeToString(sum[:])
		return nil
	})
	g.Go(func() error {
		fp.PHash = meanThresholdBits(lumaGrid(img, pHashGridSize, pHashGridSize))
		return nil
	})
	g.Go(func() error {
		fp.AHash = meanThresholdBits(lumaGrid(img, aHashGridSize, aHashGridSize))
		return nil
	})
	g.Go(func() error {
		fp.DHash = gradientBits(lumaGrid(img, dHashGridW, dHashGridH), dHashGridW, dHashGridH)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fp, nil
}
