package imgvault

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	data := testPNG(t, 120, 80, hGradient(120))
	fp, err := Extract(data, "https://example.com/a.jpg", "https://example.com/page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDigest := sha256.Sum256(data)
	if fp.ExactDigest != hex.EncodeToString(wantDigest[:]) {
		t.Errorf("ExactDigest = %q, want sha256 of input", fp.ExactDigest)
	}
	if len(fp.PHash) != 1024 {
		t.Errorf("len(PHash) = %d, want 1024", len(fp.PHash))
	}
	if len(fp.AHash) != 64 {
		t.Errorf("len(AHash) = %d, want 64", len(fp.AHash))
	}
	if len(fp.DHash) != 64 {
		t.Errorf("len(DHash) = %d, want 64", len(fp.DHash))
	}
	if fp.Width != 120 || fp.Height != 80 {
		t.Errorf("dimensions = %dx%d, want 120x80", fp.Width, fp.Height)
	}
	if fp.ByteSize != int64(len(data)) {
		t.Errorf("ByteSize = %d, want %d", fp.ByteSize, len(data))
	}
	if fp.SourceURL != "https://example.com/a.jpg" || fp.PageURL != "https://example.com/page" {
		t.Errorf("URLs not carried through: %q, %q", fp.SourceURL, fp.PageURL)
	}
}

func TestExtract_DeterministicAcrossURLs(t *testing.T) {
	t.Parallel()

	data := testPNG(t, 64, 64, hGradient(64))

	fp1, err := Extract(data, "https://a.example/img.png", "https://a.example/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fp2, err := Extract(data, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fp1.ExactDigest != fp2.ExactDigest {
		t.Error("ExactDigest depends on URLs")
	}
	if fp1.PHash != fp2.PHash || fp1.AHash != fp2.AHash || fp1.DHash != fp2.DHash {
		t.Error("perceptual hashes depend on URLs")
	}
}

func TestExtract_DHashOfGradient(t *testing.T) {
	t.Parallel()

	// A strict left-to-right gradient brightens at every step, so every
	// right-hand neighbor wins and all 64 dHash bits are set.
	data := testPNG(t, 90, 80, hGradient(90))
	fp, err := Extract(data, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < len(fp.DHash); i++ {
		if fp.DHash[i] != '1' {
			t.Fatalf("DHash[%d] = %c, want 1 (hash %q)", i, fp.DHash[i], fp.DHash)
		}
	}
}

func TestExtract_UndecodableBytes(t *testing.T) {
	t.Parallel()

	_, err := Extract([]byte("garbage"), "", "")
	if err == nil {
		t.Fatal("expected error")
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Errorf("error = %T, want *DecodeError", err)
	}
}
