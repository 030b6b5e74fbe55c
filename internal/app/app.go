package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/five82/matchday/internal/config"
	"github.com/five82/matchday/internal/feed"
	"github.com/five82/matchday/internal/logging"
	"github.com/five82/matchday/internal/netcheck"
	"github.com/five82/matchday/internal/prefs"
	"github.com/five82/matchday/internal/state"
	"github.com/five82/matchday/internal/ui"
	"github.com/five82/matchday/internal/view"
)

// Options configure the matchday application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/matchday/prefs.toml
	Debug      bool   // forces debug logging on
	Version    string

	// Once prints the list to Out and exits instead of starting the TUI.
	Once          bool
	Out           io.Writer
	Search        string
	FavoritesOnly bool
	Favorites     []string
}

// session is everything wired from config for one run.
type session struct {
	cfg       config.Config
	prefs     prefs.Prefs
	logger    *slog.Logger
	client    *feed.Client
	checker   netcheck.Checker
	store     *state.Store
	projector *view.Projector
	closeLog  io.Closer
}

// Run boots matchday until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	defer func() { err = s.close(err) }()

	s.logger.Info("matchday starting",
		"feed", s.cfg.FeedURL(),
		"session", s.client.SessionID(),
		"once", opts.Once,
	)

	if opts.Once {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		return printOnce(ctx, s, opts, out)
	}

	logFile := ""
	if s.cfg.Debug {
		logFile = s.cfg.LogFile
	}
	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     s.store,
		Projector: s.projector,
		Checker:   s.uiChecker(),
		LogFile:   logFile,
		Prefs:     s.prefs,
		PrefsPath: opts.PrefsPath,
		Logger:    s.logger,
	})
}

func newSession(opts Options) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Debug {
		cfg.Debug = true
	}
	userPrefs := prefs.Load(opts.PrefsPath)

	logger, closer, err := logging.New(logging.Options{Debug: cfg.Debug, Path: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	version := strings.TrimSpace(cfg.AppVersion)
	if version == "" {
		version = opts.Version
	}
	retries := cfg.MaxRetries
	if retries == 0 {
		retries = -1 // config zero means no retries
	}
	client, err := feed.NewClient(feed.Options{
		BaseURL:    cfg.BaseURL,
		Path:       cfg.FeedPath,
		Timeout:    cfg.RequestTimeout,
		MaxRetries: retries,
		Platform:   cfg.ClientPlatform,
		AppVersion: version,
		Logger:     logger,
	})
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("init feed client: %w", err)
	}

	var checker netcheck.Checker
	if cfg.ConnectivityCheck {
		checker = netcheck.NewMonitor(cfg.ConnectivityInterval, logger)
	}
	store := state.NewStore(client, checker)

	lang := cfg.Language
	if userPrefs.Language != "" {
		lang = userPrefs.Language
	}
	projector := view.NewProjector(store, view.Options{
		Printer:          view.NewPrinter(lang),
		Logger:           logger,
		ReloadOnToggle:   cfg.ReloadOnToggle,
		AutoExpandSearch: cfg.AutoExpandSearch,
	})

	return &session{
		cfg:       cfg,
		prefs:     userPrefs,
		logger:    logger,
		client:    client,
		checker:   checker,
		store:     store,
		projector: projector,
		closeLog:  closer,
	}, nil
}

// close releases the log file. A close failure is only reported when the run
// itself succeeded.
func (s *session) close(runErr error) error {
	if err := s.closeLog.Close(); err != nil && runErr == nil {
		return fmt.Errorf("close log: %w", err)
	}
	return runErr
}

// uiChecker returns the checker for the header indicator. With the check
// disabled the indicator always reads online.
func (s *session) uiChecker() netcheck.Checker {
	if s.checker == nil {
		return netcheck.Static(true)
	}
	return s.checker
}
