package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/spotlight/internal/config"
	"github.com/pders01/spotlight/internal/debuglog"
	"github.com/pders01/spotlight/internal/index"
	"github.com/pders01/spotlight/internal/navigator"
	"github.com/pders01/spotlight/internal/palette"
	"github.com/pders01/spotlight/internal/provider"
	"github.com/pders01/spotlight/internal/storage"
	"github.com/pders01/spotlight/internal/tui"
	"github.com/pders01/spotlight/internal/validation"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	sourcePath string
	debug      bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:          "spotlight [page.md]",
	Short:        "Command palette over a Markdown page",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runPalette,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("spotlight %s\n", Version)
		fmt.Println("Command palette")
		fmt.Println("github.com/pders01/spotlight")
	},
}

var configGenCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Write the default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if err := config.GenerateDefaultConfig(path); err != nil {
			log.Fatalf("Failed to generate config: %v", err)
		}
		fmt.Printf("Generated default configuration at: %s\n", path)
	},
}

var indexCmd = &cobra.Command{
	Use:   "index <query>",
	Short: "Print the entries a query matches, best first",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()

		loader, cleanup, err := buildLoader(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		entries, err := loader.Fetch(fetchContext(cmd), false)
		if err != nil {
			return err
		}
		return printMatches(cmd.OutOrStdout(), cfg, entries, strings.Join(args, " "))
	},
}

var prune bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "List cached sessions, or drop expired ones with --prune",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()

		store, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		if prune {
			n, err := store.Prune(time.Now().Add(-cfg.Cache.MaxAge))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed %d expired entries\n", n)
			return nil
		}

		keys, err := store.Keys(storage.AppPrefix(cfg.Cache.App))
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(out, k)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&sourcePath, "source", "", "Index file or endpoint (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log at debug level")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Skip startup banner")

	cacheCmd.Flags().BoolVar(&prune, "prune", false, "Remove entries older than cache.max_age")

	rootCmd.AddCommand(versionCmd, configGenCmd, indexCmd, cacheCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration, applies the flags and starts the
// log.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if sourcePath != "" {
		cfg.Data.Source = sourcePath
	}
	if debug {
		cfg.Log.Level = "debug"
	}

	level := debuglog.ParseLogLevel(cfg.Log.Level)
	if level != debuglog.LevelOff {
		logPath, err := validation.NewSecurePathHandler().LogPath(cfg.Log.Path)
		if err != nil {
			return nil, fmt.Errorf("invalid log path: %w", err)
		}
		if err := debuglog.Setup(level, logPath); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// buildLoader assembles the provider chain for the configured source:
// the fetcher, the session cache in front of it and the shared loader.
func buildLoader(cfg *config.Config) (*provider.Loader, func(), error) {
	cleanup := func() {}

	p, err := provider.FromSource(cfg.Data.Source, provider.Options{
		Timeout:     cfg.Data.HTTPTimeout,
		UserAgent:   cfg.Data.UserAgent,
		SubmitItems: cfg.Data.SubmitItems,
		ItemValue:   os.Getenv,
	})
	switch {
	case errors.Is(err, provider.ErrNoSource):
		debuglog.Warnf("no data source configured, the palette will be empty")
		return provider.NewLoader(provider.Empty{}, cfg.Data.HTTPTimeout), cleanup, nil
	case err != nil:
		return nil, nil, err
	}

	if cfg.Cache.Enabled {
		store, err := openCache(cfg)
		if err != nil {
			// Another instance may hold the lock; run uncached.
			debuglog.Warnf("session cache unavailable: %v", err)
		} else {
			key := storage.Key(cfg.Cache.App, cfg.Cache.Session)
			p = provider.NewCachedProvider(p, store, key, cfg.Data.Source, cfg.Cache.MaxAge)
			cleanup = func() { store.Close() }
		}
	}

	return provider.NewLoader(p, cfg.Data.HTTPTimeout), cleanup, nil
}

func openCache(cfg *config.Config) (*storage.Store, error) {
	path, err := validation.NewSecurePathHandler().CachePath(cfg.Cache.Path)
	if err != nil {
		return nil, err
	}
	return storage.NewStore(path, cfg.Cache.Timeout)
}

func buildNavigator(cfg *config.Config) (*navigator.Navigator, error) {
	registry, err := navigator.NewOpenerRegistry(navigator.DefaultUserFile())
	if err != nil {
		return nil, err
	}

	endpoint := cfg.Navigator.ResolveEndpoint
	if endpoint == "" && isRemote(cfg.Data.Source) {
		endpoint = cfg.Data.Source
	}
	return navigator.New(navigator.Options{
		BaseURL:         cfg.Navigator.BaseURL,
		InternalPrefix:  cfg.Navigator.InternalPrefix,
		ResolveEndpoint: endpoint,
		AllowPrivate:    cfg.Navigator.AllowPrivate,
		Timeout:         cfg.Data.HTTPTimeout,
	}, navigator.NewSystemLauncher(cfg.Navigator.DefaultOpener, registry))
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func runPalette(cmd *cobra.Command, args []string) error {
	if !quiet {
		tui.ShowBanner(Version)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer debuglog.Close()

	var page *tui.Page
	if len(args) == 1 {
		if page, err = tui.LoadPage(args[0]); err != nil {
			return err
		}
	}

	loader, cleanup, err := buildLoader(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	nav, err := buildNavigator(cfg)
	if err != nil {
		return err
	}

	deps := tui.Deps{
		Loader:    loader,
		Navigator: nav,
		Clipboard: clipboard.ReadAll,
		Embedded:  os.Getenv(navigator.EmbeddedEnv) != "",
	}
	if cfg.Data.Watch && !isRemote(cfg.Data.Source) && cfg.Data.Source != "" {
		w, err := provider.Watch(cfg.Data.Source)
		if err != nil {
			debuglog.Warnf("not watching index file: %v", err)
		} else {
			defer w.Close()
			deps.Watcher = w
		}
	}

	app := tui.NewApp(cfg, page, deps)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(fetchContext(cmd)))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running palette: %w", err)
	}
	return nil
}

// printMatches runs query through a palette session and prints the
// rows it would show, one per line.
func printMatches(w io.Writer, cfg *config.Config, entries []index.Entry, query string) error {
	opts := cfg.PaletteOptions().Options
	opts.InPageSearch = false

	sess := palette.NewSession(opts)
	sess.SetIndex(index.Partition(entries))
	sess.SetQuery(query)

	results := sess.Results()
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, opts.Texts.NoMatch)
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", r.Shortcut, r.Title, r.URL); err != nil {
			return err
		}
	}
	return nil
}

// fetchContext falls back to Background when a command runs outside
// Execute.
func fetchContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
