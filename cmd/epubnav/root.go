package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yuanying/epubnav/internal/bookmark"
	"github.com/yuanying/epubnav/internal/config"
	"github.com/yuanying/epubnav/internal/logging"
	"github.com/yuanying/epubnav/internal/session"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "epubnav",
		Short: "Navigate EPUB books by chapter and bookmark",
		Long: `epubnav resolves reading positions in EPUB books.

It reconciles the table of contents, landmarks and spine of a book into a
chapter list, finds where reading should start, steps through the book, and
saves and restores bookmarks even when publisher metadata is malformed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Configuration file path (default: ~/.config/epubnav/config.toml)")
	flags.String("db", "", "Bookmark database path (overrides storage.database_path)")
	flags.Int("granularity", 0, "Characters per generated location (overrides reader.location_granularity)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides logging.level)")
	flags.String("log-format", "", "Log format: text, json (overrides logging.format)")
	flags.BoolP("verbose", "v", false, "Enable debug logging (overrides --log-level)")

	rootCmd.AddCommand(
		newChaptersCmd(),
		newTOCCmd(),
		newStartCmd(),
		newStepCmd("next", "Move to the next section"),
		newStepCmd("prev", "Move to the previous section"),
		newGoToCmd(),
		newLabelCmd(),
		newBookmarkCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

type cliOptions struct {
	Config *config.Config
	Logger *slog.Logger
}

// readCLIOptions loads the configuration file and applies flag overrides.
func readCLIOptions(cmd *cobra.Command) (cliOptions, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return cliOptions{}, err
	}

	if flags.Changed("db") {
		dbPath, _ := flags.GetString("db")
		if cfg.Storage.DatabasePath, err = config.ExpandPath(strings.TrimSpace(dbPath)); err != nil {
			return cliOptions{}, fmt.Errorf("--db: %w", err)
		}
		if cfg.Storage.DatabasePath == "" {
			return cliOptions{}, fmt.Errorf("--db must not be empty")
		}
	}
	if flags.Changed("granularity") {
		granularity, _ := flags.GetInt("granularity")
		if granularity <= 0 {
			return cliOptions{}, fmt.Errorf("--granularity must be positive, got %d", granularity)
		}
		cfg.Reader.LocationGranularity = granularity
	}

	level := cfg.Logging.Level
	if flags.Changed("log-level") {
		level, _ = flags.GetString("log-level")
		if _, err := logging.ParseLevel(level); err != nil {
			return cliOptions{}, fmt.Errorf("--log-level: %w", err)
		}
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		level = "debug"
	}
	format := cfg.Logging.Format
	if flags.Changed("log-format") {
		format, _ = flags.GetString("log-format")
		if _, err := logging.ParseFormat(format); err != nil {
			return cliOptions{}, fmt.Errorf("--log-format: %w", err)
		}
	}

	logger, err := logging.New(logging.Options{Level: level, Format: format, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return cliOptions{}, err
	}
	return cliOptions{Config: cfg, Logger: logger}, nil
}

// openSession opens bookPath with the CLI configuration. With withStore the
// bookmark database is opened too. The returned cleanup closes both.
func openSession(ctx context.Context, cmd *cobra.Command, bookPath string, withStore bool) (*session.Session, func(), error) {
	opts, err := readCLIOptions(cmd)
	if err != nil {
		return nil, nil, err
	}

	sessionOpts := session.Options{
		Path:                bookPath,
		LocationGranularity: opts.Config.Reader.LocationGranularity,
		Logger:              opts.Logger,
	}
	var store *bookmark.Store
	if withStore {
		store, err = bookmark.Open(ctx, opts.Config.Storage.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open bookmark store: %w", err)
		}
		sessionOpts.Store = store
	}

	s, err := session.Open(sessionOpts)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		if err := s.Close(); err != nil {
			opts.Logger.Warn("close book", "error", err)
		}
		if store != nil {
			if err := store.Close(); err != nil {
				opts.Logger.Warn("close bookmark store", "error", err)
			}
		}
	}
	return s, cleanup, nil
}
