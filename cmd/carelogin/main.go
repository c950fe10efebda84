package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/carelogin/internal/auth"
	"github.com/jask/carelogin/internal/config"
	"github.com/jask/carelogin/internal/i18n"
	"github.com/jask/carelogin/internal/logging"
	"github.com/jask/carelogin/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, logFile, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logFile.Close()

	tr, err := i18n.New(cfg.Locale)
	if err != nil {
		log.Fatalf("locale: %v", err)
	}
	logger.Info().
		Str("locale", tr.Locale()).
		Str("catalog", tr.Matched()).
		Str("api", cfg.API.BaseURL).
		Msg("starting")

	client := auth.NewHTTPClient(cfg.API.BaseURL, cfg.API.Timeout,
		auth.WithLanguage(tr.Locale()),
		auth.WithLogger(logger.With().Str("component", "auth").Logger()),
	)

	p := tea.NewProgram(tui.New(ctx, tui.Options{
		Auth:          client,
		Translator:    tr,
		Logger:        logger.With().Str("component", "login").Logger(),
		ToastDuration: cfg.UI.ToastDuration,
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("program exited")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		_ = logFile.Close()
		os.Exit(1)
	}
}
