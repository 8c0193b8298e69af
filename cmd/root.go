package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/timetick/internal/config"
	"github.com/abhisek/timetick/internal/llm"
	"github.com/abhisek/timetick/internal/profile"
	"github.com/abhisek/timetick/internal/session"
	"github.com/abhisek/timetick/internal/store"
	"github.com/abhisek/timetick/internal/trivia"
	"github.com/abhisek/timetick/internal/triviagen"
)

var rootCmd = &cobra.Command{
	Use:   "timetick",
	Short: "Timed trivia in your terminal",
	Long:  "TimeTick is a terminal trivia quiz: answer each question before the clock runs out.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

// Execute runs the root command. An interrupt cancels the command
// context so the line-mode quiz can say goodbye.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to the config file (overrides TIMETICK_CONFIG)")
	pf.String("profiles", "", "Path to the profile file (overrides TIMETICK_PROFILES)")
	pf.String("db", "", "Path to the SQLite history database (overrides TIMETICK_DB)")
	pf.String("user", "", "Player name; skips the username prompt")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig reads the config file, applies env overrides and then the
// persistent flags, and resolves default data paths.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("profiles"); v != "" {
		cfg.ProfilesPath = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("user"); v != "" {
		cfg.User = v
	}
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogging sends slog output to the configured log file, or drops it
// so nothing is written over the terminal UI.
func setupLogging(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		// Reported again by the command that needs the config.
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil
	}
	if cfg.LogPath == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil
	}
	f, err := tea.LogToFile(cfg.LogPath, "timetick")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	cobra.OnFinalize(func() { f.Close() })
	return nil
}

// deps holds everything a playing command needs.
type deps struct {
	cfg        *config.Config
	profiles   *profile.Store
	history    *store.Store
	provider   trivia.Provider
	categories trivia.CategoryLister
	source     string
}

// openDeps loads the profile file, opens the history database and builds
// the question source. A corrupt profile file is reported and replaced by
// an empty one; a history database that cannot be opened disables
// history.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg}

	d.profiles, err = profile.Load(cfg.ProfilesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
		slog.Warn("profile load failed", "path", cfg.ProfilesPath, "error", err)
	}

	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	d.history, err = store.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: history unavailable:", err)
		slog.Warn("open history failed", "path", cfg.DBPath, "error", err)
		d.history = nil
	}

	if err := d.buildSource(cmd.Context()); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func (d *deps) buildSource(ctx context.Context) error {
	switch d.cfg.Trivia.Source {
	case config.SourceLLM:
		lc := llm.Resolve()
		var opts []llm.FactoryOption
		if lc.Provider == llm.ProviderMock {
			opts = append(opts, llm.WithMock(triviagen.OfflineMock()))
		}
		var events store.EventRepo
		if d.history != nil {
			events = d.history
		}
		p, err := llm.NewProvider(ctx, lc, events, opts...)
		if err != nil {
			return fmt.Errorf("LLM question source: %w", err)
		}
		g := triviagen.New(p)
		d.provider, d.categories = g, g
		d.source = config.SourceLLM + ":" + p.Name()
	default:
		c := trivia.NewClient(d.cfg.Trivia.BaseURL, trivia.WithTimeout(d.cfg.Trivia.Timeout))
		d.provider, d.categories = c, c
		d.source = config.SourceOpenTDB
	}
	return nil
}

func (d *deps) service() *session.Service {
	svc := &session.Service{
		Provider: d.provider,
		Profiles: d.profiles,
		Source:   d.source,
	}
	if d.history != nil {
		svc.History = d.history
	}
	return svc
}

func (d *deps) Close() {
	if d.history != nil {
		d.history.Close()
	}
}

// openHistory opens only the history database, for read-only commands.
func openHistory(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
