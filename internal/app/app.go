package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/moodline/internal/config"
	"github.com/five82/moodline/internal/controller"
	"github.com/five82/moodline/internal/logger"
	"github.com/five82/moodline/internal/prefs"
	"github.com/five82/moodline/internal/sentiment"
	"github.com/five82/moodline/internal/state"
	"github.com/five82/moodline/internal/transcript"
	"github.com/five82/moodline/internal/ui"
)

// Version is reported by --version and in the User-Agent header.
var Version = "0.1.0"

// Options configure a moodline session.
type Options struct {
	ConfigPath string
	APIURL     string // overrides env and config file when non-blank
	PrefsPath  string // empty uses default ~/.config/moodline/prefs.toml

	TranscriptPath  string // prefill the input from this file
	TranscriptLines int    // keep only the trailing N lines; <= 0 keeps all
}

// App holds the wired components shared by the TUI and headless commands.
type App struct {
	Config     config.Config
	Log        *logrus.Logger
	Client     *sentiment.Client
	Store      *state.Store
	Controller *controller.Controller

	closeLog func() error
}

// New loads configuration, opens the log file and builds the controller.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.WithAPIURL(opts.APIURL)

	log, closeLog, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := sentiment.NewClient(cfg.APIURL,
		sentiment.WithTimeout(cfg.RequestTimeout),
		sentiment.WithLogger(log),
		sentiment.WithUserAgent("moodline/"+Version),
	)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("init sentiment client: %w", err)
	}

	store := &state.Store{}
	log.WithFields(logrus.Fields{
		"api_url": client.BaseURL(),
		"version": Version,
	}).Info("moodline starting")

	return &App{
		Config:     cfg,
		Log:        log,
		Client:     client,
		Store:      store,
		Controller: controller.New(store, client, log),
		closeLog:   closeLog,
	}, nil
}

// Close releases the log file.
func (a *App) Close() error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

// LoadTranscript returns the input text described by opts, or "" when no
// transcript was requested.
func LoadTranscript(opts Options) (string, error) {
	path := strings.TrimSpace(opts.TranscriptPath)
	if path == "" {
		return "", nil
	}
	lines, err := transcript.Read(path, opts.TranscriptLines)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// Run boots the moodline TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	input, err := LoadTranscript(opts)
	if err != nil {
		return err
	}

	a, err := New(opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath, ui.ThemeNames())

	err = ui.Run(ui.Options{
		Context:      ctx,
		Controller:   a.Controller,
		BaseURL:      a.Client.BaseURL(),
		ThemeName:    userPrefs.Theme,
		PrefsPath:    prefsPath,
		InitialInput: input,
		Logger:       a.Log,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
