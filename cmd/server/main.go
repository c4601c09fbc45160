package main

import (
	"errors"
	"flag"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/youruser/wallpaperapp/internal/api"
	"github.com/youruser/wallpaperapp/internal/config"
	imagepkg "github.com/youruser/wallpaperapp/internal/image"
	"github.com/youruser/wallpaperapp/internal/logging"
	"github.com/youruser/wallpaperapp/internal/operators"
	"github.com/youruser/wallpaperapp/internal/util"
)

func main() {
	configPath := flag.String("config", "", "path to wallpaper.yaml")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	_ = godotenv.Load()

	cfg, usedPath, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logging.Setup(cfg.LogLevel, *debug)
	if usedPath != "" {
		log.WithField("path", usedPath).Info("config loaded")
	}

	// Operator data is best-effort: the raw-url endpoints work without it.
	roster, err := operators.LoadFromDataDir(cfg.DataDir)
	if err != nil {
		log.WithError(err).Warn("failed to load operator data at startup")
	}

	if err := util.EnsureDir(cfg.OutputDir); err != nil {
		log.WithError(err).Fatal("create output dir")
	}

	client := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
		Log:       log,
	})
	fetcher := imagepkg.NewFetcher(client, cfg.ArtCacheTTL, imagepkg.RemoteOnly())
	composer := imagepkg.NewComposer(fetcher, cfg.BackgroundPath, log)

	r := gin.Default()
	api.RegisterRoutes(r, api.NewServer(roster, composer, cfg.OutputDir, log))

	log.WithField("addr", cfg.Listen).Info("starting server")
	if err := r.Run(cfg.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
}
