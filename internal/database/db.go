// Package database owns the Postgres connection, schema migrations, and
// corpus loading for the duplicate matcher.
package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	imgvault "github.com/FahadBinHussain/ImgVault-sub001"
)

// InitDB opens and verifies the database connection. DATABASE_URL wins;
// otherwise the connection string is assembled from the DB_* variables.
func InitDB() (*sql.DB, error) {
	var connStr string
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		connStr = dbURL
	} else {
		connStr = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_SSLMODE"),
		)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations creates the images table and indexes if they don't exist.
// The fingerprint columns are what LoadCorpus reads; older rows with NULL
// hashes simply sit out the phases they lack fields for.
func RunMigrations(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS images (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		stored_url TEXT NOT NULL,
		source_image_url TEXT,
		source_page_url TEXT,
		page_title TEXT,
		file_type TEXT,
		file_size BIGINT,
		width INTEGER,
		height INTEGER,
		exact_digest TEXT,
		phash TEXT,
		ahash TEXT,
		dhash TEXT,
		artist TEXT,
		copyright TEXT,
		notes TEXT,
		tags TEXT[],
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_images_created_at ON images(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_images_exact_digest ON images(exact_digest);
	CREATE INDEX IF NOT EXISTS idx_images_tags ON images USING GIN(tags);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}
	return nil
}

// LoadCorpus reads every archived item's fingerprint fields into the shape
// the matcher consumes. NULL columns become empty strings, which the
// matcher already treats as "field absent".
func LoadCorpus(db *sql.DB) ([]imgvault.CorpusEntry, error) {
	rows, err := db.Query(`
		SELECT id,
		       COALESCE(exact_digest, ''),
		       COALESCE(phash, ''),
		       COALESCE(ahash, ''),
		       COALESCE(dhash, ''),
		       COALESCE(source_image_url, ''),
		       COALESCE(source_page_url, '')
		FROM images
	`)
	if err != nil {
		return nil, fmt.Errorf("error loading corpus: %w", err)
	}
	defer rows.Close()

	var corpus []imgvault.CorpusEntry
	for rows.Next() {
		var e imgvault.CorpusEntry
		if err := rows.Scan(
			&e.ID,
			&e.Fingerprint.ExactDigest,
			&e.Fingerprint.PHash,
			&e.Fingerprint.AHash,
			&e.Fingerprint.DHash,
			&e.Fingerprint.SourceURL,
			&e.Fingerprint.PageURL,
		); err != nil {
			return nil, fmt.Errorf("error scanning corpus row: %w", err)
		}
		corpus = append(corpus, e)
	}
	return corpus, rows.Err()
}
