package imgvault

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("FAKEIMAGEDATA"))
	}))
	defer srv.Close()

	res := Fetch(context.Background(), srv.Client(), srv.URL+"/image.jpg", FetchOpts{})
	if res == nil {
		t.Fatal("expected result, got nil")
	}
	if res.MIMEType != "image/jpeg" {
		t.Errorf("MIMEType = %q, want image/jpeg", res.MIMEType)
	}
	if len(res.Data) == 0 {
		t.Error("Data is empty")
	}
}

func TestFetch_NonImageContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	if res := Fetch(context.Background(), srv.Client(), srv.URL+"/page.html", FetchOpts{}); res != nil {
		t.Errorf("expected nil result for non-image content type, got %v", res)
	}
}

func TestFetch_404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	if res := Fetch(context.Background(), srv.Client(), srv.URL+"/missing.jpg", FetchOpts{}); res != nil {
		t.Errorf("expected nil result for 404, got %v", res)
	}
}

func TestFetch_VideoContentAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		_, _ = w.Write([]byte("FAKEVIDEODATA"))
	}))
	defer srv.Close()

	res := Fetch(context.Background(), srv.Client(), srv.URL+"/clip.mp4", FetchOpts{})
	if res == nil {
		t.Fatal("expected result for video content, got nil")
	}
	if res.MIMEType != "video/mp4" {
		t.Errorf("MIMEType = %q, want video/mp4", res.MIMEType)
	}
}

func TestFetch_MaxBytesEnforcement(t *testing.T) {
	const maxBytes = 10
	body := strings.Repeat("X", 100)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	res := Fetch(context.Background(), srv.Client(), srv.URL+"/big.png", FetchOpts{MaxBytes: maxBytes})
	if res == nil {
		t.Fatal("expected result, got nil")
	}
	if int64(len(res.Data)) > maxBytes {
		t.Errorf("Data len = %d, want <= %d", len(res.Data), maxBytes)
	}
}

func TestFetch_MIMEParameterStripping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg; charset=utf-8")
		_, _ = w.Write([]byte("FAKEIMAGEDATA"))
	}))
	defer srv.Close()

	res := Fetch(context.Background(), srv.Client(), srv.URL+"/photo.jpg", FetchOpts{})
	if res == nil {
		t.Fatal("expected result, got nil")
	}
	if res.MIMEType != "image/jpeg" {
		t.Errorf("MIMEType = %q after stripping, want image/jpeg", res.MIMEType)
	}
}
