package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	imgvault "github.com/FahadBinHussain/ImgVault-sub001"
	"github.com/FahadBinHussain/ImgVault-sub001/internal/api"
	"github.com/FahadBinHussain/ImgVault-sub001/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	db, err := database.InitDB()
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("starting ImgVault API server", "port", port)
	if err := api.StartServer(db, port, matcherConfigFromEnv()); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// matcherConfigFromEnv starts from the engine defaults and applies the
// deployment's tuning knobs.
func matcherConfigFromEnv() imgvault.MatcherConfig {
	cfg := imgvault.DefaultMatcherConfig()
	if v := os.Getenv("MATCH_QUORUM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MatchQuorum = n
		}
	}
	if os.Getenv("KEEP_FACEBOOK_ID_PARAMS") == "true" {
		cfg.KeepFacebookIDParams = true
	}
	return cfg
}
