package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/ttg/internal/catalog"
	"github.com/javiermolinar/ttg/internal/config"
	"github.com/javiermolinar/ttg/internal/logger"
	"github.com/javiermolinar/ttg/internal/palette"
	"github.com/javiermolinar/ttg/internal/store"
	"github.com/javiermolinar/ttg/internal/timetable"
	"github.com/javiermolinar/ttg/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
	logger *zap.Logger
	store  *store.Store

	// Global flags
	configPath  string
	catalogPath string
	mono        bool
	noColor     bool
	term        int
}

// AppOption configures optional app behavior.
type AppOption func(*App)

// WithLogger sets the logger instead of building one from the config.
func WithLogger(l *zap.Logger) AppOption {
	return func(a *App) {
		a.logger = l
	}
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	a := &App{config: cfg}
	for _, opt := range opts {
		opt(a)
	}

	a.root = &cobra.Command{
		Use:   "ttg",
		Short: "Build a weekly class timetable",
		Long: `ttg builds a weekly class timetable from a school catalog.

Pick course sections in the interactive picker, see clashes as they happen,
and save the result as a short shareable link.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}

	// Add global flags
	flags := a.root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultConfigPath()+")")
	flags.StringVar(&a.catalogPath, "catalog", "", "School catalog JSON file")
	flags.BoolVar(&a.mono, "mono", false, "Draw every course in the default colour")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable color output")
	flags.IntVar(&a.term, "term", 0, "Only show this term (1 or 2)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.openCmd())
	a.root.AddCommand(a.saveCmd())
	a.root.AddCommand(a.reapCmd())
	a.root.AddCommand(a.coursesCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ttg %s (commit: %s)\n", Version, Commit)
		},
	}
}

// setup applies the global flags before any command runs.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if a.configPath != "" {
		cfg, err := config.LoadFrom(a.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.config = cfg
	}
	if a.catalogPath != "" {
		a.config.Catalog.Path = a.catalogPath
	}
	if a.mono {
		a.config.Display.Monochrome = true
	}
	if cmd.Flags().Changed("term") {
		if a.term != 1 && a.term != 2 {
			return fmt.Errorf("--term must be 1 or 2, got %d", a.term)
		}
		a.config.Display.Term = a.term
	}
	if a.noColor {
		DisableColor()
	}

	if a.logger == nil {
		l, err := logger.New(a.config.Log)
		if err != nil {
			return err
		}
		a.logger = l
	}
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

func (a *App) runTUI() error {
	cat, err := a.loadCatalog()
	if err != nil {
		return err
	}
	session, err := a.newSession(cat)
	if err != nil {
		return err
	}

	opts := []tui.ModelOption{tui.WithLogger(a.logger)}
	if s, err := a.openStore(); err != nil {
		a.logger.Warn("saving disabled", zap.Error(err))
	} else {
		opts = append(opts, tui.WithSaver(s))
	}
	return tui.Run(cat, session, a.config, opts...)
}

func (a *App) loadCatalog() (*catalog.Catalog, error) {
	if a.config.Catalog.Path == "" {
		return nil, fmt.Errorf("no catalog configured: pass --catalog or set catalog.path")
	}
	cat, err := catalog.Load(a.config.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	a.logger.Debug("catalog loaded", zap.String("school", cat.ID), zap.String("path", a.config.Catalog.Path))
	return cat, nil
}

func (a *App) newSession(cat *catalog.Catalog) (*timetable.Session, error) {
	p, err := palette.Load(a.config.Display.Palette)
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}
	s := timetable.New(p,
		timetable.WithLogger(a.logger),
		timetable.WithPrefixes(cat.PrefixMap()),
	)
	s.SetMonochrome(a.config.Display.Monochrome)
	return s, nil
}

// openStore opens the link store once, creating its directory if needed.
func (a *App) openStore() (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	dbPath := a.config.Storage.DBPath
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	opts := []store.Option{store.WithLogger(a.logger)}
	if a.config.Links.LegacyFallback {
		opts = append(opts, store.WithResolver(store.NewShortLinkResolver(a.config.Links.LegacyHost)))
	}
	s, err := store.New(dbPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	a.store = s
	return s, nil
}
