package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/youruser/wallpaperapp/internal/config"
	"github.com/youruser/wallpaperapp/internal/logging"
)

var (
	flagConfig string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:           "wallgen",
	Short:         "Operator phone wallpaper generator",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to wallpaper.yaml")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

// setup loads .env, the config file and the logger shared by every command.
func setup() (*config.Config, *logrus.Logger, error) {
	_ = godotenv.Load()

	cfg, usedPath, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	log := logging.Setup(cfg.LogLevel, flagDebug)
	if usedPath != "" {
		log.WithField("path", usedPath).Debug("config loaded")
	}
	return cfg, log, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
