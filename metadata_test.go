package imgvault

import (
	"image/color"
	"testing"
)

func TestExtractMetadata_GracefulOnBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "nil input", data: nil},
		{name: "empty input", data: []byte{}},
		{name: "garbage bytes", data: []byte("not an image at all")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractMetadata(tc.data); got != nil {
				t.Errorf("ExtractMetadata(%q) = %+v, want nil", tc.data, got)
			}
		})
	}
}

func TestExtractMetadata_PNGWithoutTags(t *testing.T) {
	t.Parallel()

	// A freshly encoded PNG carries none of the wanted provenance tags.
	data := testPNG(t, 16, 16, solid(color.RGBA{9, 9, 9, 255}))
	if got := ExtractMetadata(data); got != nil {
		t.Errorf("ExtractMetadata() = %+v, want nil for tagless image", got)
	}
}

func TestTagValueString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "plain string", in: "Jane", want: "Jane"},
		{name: "string slice takes first", in: []string{"Jane", "John"}, want: "Jane"},
		{name: "any slice takes first string", in: []any{"Jane"}, want: "Jane"},
		{name: "empty slice", in: []string{}, want: ""},
		{name: "unsupported type", in: 42, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tagValueString(tc.in); got != tc.want {
				t.Errorf("tagValueString(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
