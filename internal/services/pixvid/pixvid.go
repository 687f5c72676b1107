// Package pixvid uploads archived files to the Pixvid.org (Chevereto)
// image host and returns the stored URL.
package pixvid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
)

const uploadURL = "https://pixvid.org/api/1/upload"

// Response is the subset of the Chevereto upload response we read.
type Response struct {
	StatusCode int `json:"status_code"`
	Image      struct {
		Name      string `json:"name"`
		Extension string `json:"extension"`
		Size      int64  `json:"size"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		URL       string `json:"url"`
		URLViewer string `json:"url_viewer"`
		Thumb     string `json:"thumb"`
	} `json:"image"`
}

// Upload sends a file to Pixvid and returns the stored URL. A single
// attempt is made; retry policy belongs to the caller.
func Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	apiKey := os.Getenv("PIXVID_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("PIXVID_API_KEY is not set")
	}

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	// Field name "source" per the Chevereto API.
	part, err := writer.CreateFormFile("source", filename)
	if err != nil {
		return "", fmt.Errorf("error creating form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("error copying file: %w", err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &requestBody)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-API-Key", apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("pixvid API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	if result.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pixvid upload failed with status code: %d", result.StatusCode)
	}
	if result.Image.URL == "" {
		return "", fmt.Errorf("no URL in response")
	}
	return result.Image.URL, nil
}
