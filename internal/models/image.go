// Package models holds the record types shared by the API layer and the
// database store.
package models

import (
	"time"

	imgvault "github.com/FahadBinHussain/ImgVault-sub001"
)

// Image is an archived item as stored in the database, including the
// fingerprint columns the duplicate matcher compares against.
type Image struct {
	ID             string    `json:"id"`
	StoredURL      string    `json:"stored_url"`
	SourceImageURL string    `json:"source_image_url,omitempty"`
	SourcePageURL  string    `json:"source_page_url,omitempty"`
	PageTitle      string    `json:"page_title,omitempty"`
	FileType       string    `json:"file_type"`
	FileSize       int64     `json:"file_size"`
	Width          int       `json:"width,omitempty"`
	Height         int       `json:"height,omitempty"`
	ExactDigest    string    `json:"exact_digest,omitempty"`
	PHash          string    `json:"-"`
	AHash          string    `json:"-"`
	DHash          string    `json:"-"`
	Artist         string    `json:"artist,omitempty"`
	Copyright      string    `json:"copyright,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// UploadRequest is the metadata half of a multipart upload.
type UploadRequest struct {
	SourceImageURL string   `json:"source_image_url"`
	SourcePageURL  string   `json:"source_page_url"`
	PageTitle      string   `json:"page_title"`
	Notes          string   `json:"notes"`
	Tags           []string `json:"tags"`
	Force          bool     `json:"force"` // archive even when flagged as duplicate
}

// UploadResponse is returned after an upload attempt. On a duplicate
// rejection Success is false and Duplicate carries the match report.
type UploadResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Image     *Image         `json:"image,omitempty"`
	Duplicate *DuplicateInfo `json:"duplicate,omitempty"`
}

// DuplicateInfo pairs the human-readable summary with the full report so
// the extension popup can render both without a second request.
type DuplicateInfo struct {
	Summary string               `json:"summary"`
	Report  *imgvault.MatchReport `json:"report"`
}
