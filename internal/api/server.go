// Package api exposes the archive over HTTP: upload with a duplicate gate,
// standalone duplicate checks, and the usual list/get/delete plumbing.
package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/rs/cors"

	imgvault "github.com/FahadBinHussain/ImgVault-sub001"
	"github.com/FahadBinHussain/ImgVault-sub001/internal/database"
	"github.com/FahadBinHussain/ImgVault-sub001/internal/models"
	"github.com/FahadBinHussain/ImgVault-sub001/internal/services/pixvid"
)

// maxUploadBytes bounds multipart parsing and URL fetches alike.
const maxUploadBytes = 32 << 20

type Server struct {
	db      *sql.DB
	router  *mux.Router
	matcher *imgvault.Matcher
	session *imgvault.SessionFilter
}

// StartServer starts the HTTP server with the given matcher configuration.
func StartServer(db *sql.DB, port string, cfg imgvault.MatcherConfig) error {
	s := &Server{
		db:      db,
		router:  mux.NewRouter(),
		matcher: imgvault.NewMatcher(cfg),
		session: &imgvault.SessionFilter{},
	}
	s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := c.Handler(s.router)

	addr := fmt.Sprintf(":%s", port)
	slog.Info("server listening", "addr", addr)
	return http.ListenAndServe(addr, handler)
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/upload", s.handleUpload).Methods("POST", "OPTIONS")
	api.HandleFunc("/check", s.handleCheck).Methods("POST", "OPTIONS")
	api.HandleFunc("/images", s.handleGetImages).Methods("GET")
	api.HandleFunc("/images/{id}", s.handleGetImage).Methods("GET")
	api.HandleFunc("/images/{id}", s.handleDeleteImage).Methods("DELETE")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// captureInput is the normalized form of an upload or check request: raw
// bytes ready for fingerprinting plus the capture context.
type captureInput struct {
	data     []byte
	filename string
	fileType string
	req      models.UploadRequest
}

// readCapture parses a multipart request. The file may arrive inline
// ("file" part) or as a source_image_url for the server to fetch.
func readCapture(r *http.Request) (*captureInput, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("failed to parse form data")
	}

	in := &captureInput{
		req: models.UploadRequest{
			SourceImageURL: r.FormValue("source_image_url"),
			SourcePageURL:  r.FormValue("source_page_url"),
			PageTitle:      r.FormValue("page_title"),
			Notes:          r.FormValue("notes"),
			Force:          r.FormValue("force") == "true",
		},
	}
	if tagsStr := r.FormValue("tags"); tagsStr != "" {
		for _, tag := range strings.Split(tagsStr, ",") {
			in.req.Tags = append(in.req.Tags, strings.TrimSpace(tag))
		}
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		in.data, err = io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to read file")
		}
		in.filename = header.Filename
		in.fileType = header.Header.Get("Content-Type")
	case in.req.SourceImageURL != "":
		res := imgvault.Fetch(r.Context(), nil, in.req.SourceImageURL, imgvault.FetchOpts{MaxBytes: maxUploadBytes})
		if res == nil {
			return nil, fmt.Errorf("failed to fetch source image")
		}
		in.data = res.Data
		in.fileType = res.MIMEType
		in.filename = captureFilename(in.req.SourceImageURL)
	default:
		return nil, fmt.Errorf("no file provided")
	}

	if in.fileType == "" {
		in.fileType = "application/octet-stream"
	}
	return in, nil
}

func captureFilename(sourceURL string) string {
	if idx := strings.LastIndexByte(sourceURL, '/'); idx >= 0 && idx < len(sourceURL)-1 {
		name := sourceURL[idx+1:]
		if q := strings.IndexByte(name, '?'); q >= 0 {
			name = name[:q]
		}
		if name != "" {
			return name
		}
	}
	return "capture"
}

// runDuplicateCheck fingerprints the capture and scans the stored corpus.
func (s *Server) runDuplicateCheck(in *captureInput) (*imgvault.Fingerprint, *imgvault.MatchReport, error) {
	fp, err := imgvault.Extract(in.data, in.req.SourceImageURL, in.req.SourcePageURL)
	if err != nil {
		return nil, nil, err
	}

	corpus, err := database.LoadCorpus(s.db)
	if err != nil {
		return nil, nil, err
	}

	report, err := s.matcher.Check(fp, corpus, func(msg string) {
		slog.Debug("duplicate scan", "status", msg)
	})
	if err != nil {
		return nil, nil, err
	}
	return fp, report, nil
}

// handleUpload archives a capture unless the duplicate gate rejects it.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	in, err := readCapture(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Cheap in-session prescreen before the full corpus scan.
	if !in.req.Force && s.session.SeenBytes(in.data) {
		respondWithJSON(w, http.StatusConflict, models.UploadResponse{
			Success: false,
			Message: "already captured in this session",
		})
		return
	}

	fp, report, err := s.runDuplicateCheck(in)
	if err != nil {
		slog.Error("duplicate check failed", "error", err)
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if report.IsDuplicate && !in.req.Force {
		slog.Info("upload rejected as duplicate", "summary", report.Summary())
		respondWithJSON(w, http.StatusConflict, models.UploadResponse{
			Success:   false,
			Message:   "duplicate detected",
			Duplicate: &models.DuplicateInfo{Summary: report.Summary(), Report: report},
		})
		return
	}

	storedURL, err := pixvid.Upload(r.Context(), bytes.NewReader(in.data), in.filename)
	if err != nil {
		slog.Error("pixvid upload failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to upload to Pixvid: %v", err))
		return
	}

	meta := imgvault.ExtractMetadata(in.data)
	var artist, copyright string
	if meta != nil {
		artist, copyright = meta.Artist, meta.Copyright
	}

	var imageID string
	query := `
		INSERT INTO images (stored_url, source_image_url, source_page_url, page_title,
		                    file_type, file_size, width, height,
		                    exact_digest, phash, ahash, dhash,
		                    artist, copyright, notes, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err = s.db.QueryRow(
		query,
		storedURL,
		in.req.SourceImageURL,
		in.req.SourcePageURL,
		in.req.PageTitle,
		in.fileType,
		fp.ByteSize,
		fp.Width,
		fp.Height,
		fp.ExactDigest,
		fp.PHash,
		fp.AHash,
		fp.DHash,
		artist,
		copyright,
		in.req.Notes,
		pq.Array(in.req.Tags),
	).Scan(&imageID)
	if err != nil {
		slog.Error("database insert failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to save to database")
		return
	}

	image, err := s.getImageByID(imageID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve saved image")
		return
	}

	respondWithJSON(w, http.StatusCreated, models.UploadResponse{
		Success: true,
		Message: "Image uploaded successfully",
		Image:   image,
	})
}

// handleCheck runs the duplicate scan without archiving anything.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	in, err := readCapture(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, report, err := s.runDuplicateCheck(in)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

func (s *Server) handleGetImages(w http.ResponseWriter, _ *http.Request) {
	query := `
		SELECT id, stored_url, source_image_url, source_page_url, page_title,
		       file_type, file_size, width, height, exact_digest,
		       artist, copyright, notes, tags, created_at
		FROM images
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch images")
		return
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		var img models.Image
		var tags pq.StringArray
		var width, height sql.NullInt64
		var digest, artist, copyright sql.NullString
		err := rows.Scan(
			&img.ID, &img.StoredURL, &img.SourceImageURL, &img.SourcePageURL,
			&img.PageTitle, &img.FileType, &img.FileSize, &width, &height,
			&digest, &artist, &copyright, &img.Notes, &tags, &img.CreatedAt,
		)
		if err != nil {
			slog.Warn("error scanning row", "error", err)
			continue
		}
		img.Width, img.Height = int(width.Int64), int(height.Int64)
		img.ExactDigest = digest.String
		img.Artist, img.Copyright = artist.String, copyright.String
		img.Tags = tags
		images = append(images, img)
	}

	respondWithJSON(w, http.StatusOK, images)
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	image, err := s.getImageByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			respondWithError(w, http.StatusNotFound, "Image not found")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch image")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, image)
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := s.db.Exec(`DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		respondWithError(w, http.StatusNotFound, "Image not found")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Image deleted successfully",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "ImgVault API",
	})
}

func (s *Server) getImageByID(id string) (*models.Image, error) {
	query := `
		SELECT id, stored_url, source_image_url, source_page_url, page_title,
		       file_type, file_size, width, height, exact_digest,
		       artist, copyright, notes, tags, created_at
		FROM images
		WHERE id = $1
	`

	var img models.Image
	var tags pq.StringArray
	var width, height sql.NullInt64
	var digest, artist, copyright sql.NullString
	err := s.db.QueryRow(query, id).Scan(
		&img.ID, &img.StoredURL, &img.SourceImageURL, &img.SourcePageURL,
		&img.PageTitle, &img.FileType, &img.FileSize, &width, &height,
		&digest, &artist, &copyright, &img.Notes, &tags, &img.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	img.Width, img.Height = int(width.Int64), int(height.Int64)
	img.ExactDigest = digest.String
	img.Artist, img.Copyright = artist.String, copyright.String
	img.Tags = tags
	return &img, nil
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
