package imgvault

import (
	"bytes"

	"github.com/bep/imagemeta"
)

// ArchiveMetadata holds the provenance fields worth keeping alongside an
// archived image: who made it, under what terms, with what, and when.
type ArchiveMetadata struct {
	Artist       string // EXIF Artist or XMP dc:creator
	Copyright    string // EXIF Copyright or XMP dc:rights
	Description  string // EXIF ImageDescription
	Software     string // EXIF Software
	OriginalTime string // EXIF DateTimeOriginal, as written in the file
}

// wantedTags maps (source, tag-name) → true for every tag we keep.
var wantedTags = map[imagemeta.Source]map[string]bool{
	imagemeta.EXIF: {
		"Artist":           true,
		"Copyright":        true,
		"ImageDescription": true,
		"Software":         true,
		"DateTimeOriginal": true,
	},
	imagemeta.XMP: {
		"Creator": true,
		"Rights":  true,
	},
}

// ExtractMetadata parses EXIF/XMP provenance fields from raw image bytes.
// Returns nil if the data is nil, empty, carries none of the wanted tags,
// or cannot be parsed. Graceful degradation: never returns an error.
func ExtractMetadata(data []byte) *ArchiveMetadata {
	if len(data) == 0 {
		return nil
	}

	meta := &ArchiveMetadata{}
	found := false

	_, err := imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF | imagemeta.XMP,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			if tags, ok := wantedTags[ti.Source]; ok {
				return tags[ti.Tag]
			}
			return false
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			s := tagValueString(ti.Value)
			if s == "" {
				return nil
			}
			switch ti.Tag {
			case "Artist", "Creator":
				if meta.Artist == "" {
					meta.Artist = s
				}
			case "Copyright", "Rights":
				if meta.Copyright == "" {
					meta.Copyright = s
				}
			case "ImageDescription":
				meta.Description = s
			case "Software":
				meta.Software = s
			case "DateTimeOriginal":
				meta.OriginalTime = s
			default:
				return nil
			}
			found = true
			return nil
		},
	})

	if err != nil || !found {
		return nil
	}
	return meta
}

// tagValueString extracts a string from a tag value.
// XMP values may be string or []string (from altList/seqList).
func tagValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
		return ""
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
		return ""
	default:
		return ""
	}
}
