package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lzkit/lzkit/internal/catalog"
	"github.com/lzkit/lzkit/internal/config"
	"github.com/lzkit/lzkit/internal/session"
	"github.com/lzkit/lzkit/internal/snapshot"
	"github.com/lzkit/lzkit/internal/store"
	"github.com/lzkit/lzkit/internal/validate"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	configDir    string
	verbose      bool
	dbPathFlag   string
	snapshotFlag string
)

var rootCmd = &cobra.Command{
	Use:   "lzkit",
	Short: "Landing zone discovery toolkit",
	Long: `lzkit runs cloud landing-zone discovery sessions: it asks a fixed
catalog of design questions, extracts answers from uploaded documents,
validates them against networking and governance best practices, and
exports the collected requirements as a JSON snapshot.

Sessions checkpoint automatically to a local SQLite database, so a run
interrupted mid-workshop resumes where it left off.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configDir)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if dbPathFlag != "" {
			cfg.DatabasePath = dbPathFlag
		}
		if snapshotFlag != "" {
			cfg.SnapshotDir = snapshotFlag
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding lzkit.yaml and .env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "path to the session database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&snapshotFlag, "snapshot-dir", "", "directory for exported snapshots (overrides config)")
}

// openStore opens the session database at the configured path.
func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening session database %s: %w", cfg.DatabasePath, err)
	}
	return st, nil
}

// checkpointTo returns the checkpoint hook shared by the interactive and
// analysis commands: every checkpoint both persists to the database and
// refreshes the session's snapshot file, so either source can resume it.
func checkpointTo(st *store.Store, reg *catalog.Registry) session.CheckpointFunc {
	return func(ctx context.Context, state session.State) error {
		doc := snapshot.Build(state, reg)
		if err := st.SaveCheckpoint(ctx, state, doc); err != nil {
			return err
		}
		return snapshot.WriteFile(snapshot.DefaultPath(cfg.SnapshotDir, state.SessionID), doc)
	}
}

// newManager wires a session manager against the default catalog and rule
// set, checkpointing to st.
func newManager(st *store.Store) (*session.Manager, *catalog.Registry, error) {
	reg := catalog.Default()
	mgr, err := session.NewManager(session.Config{
		Catalog:             reg,
		Rules:               validate.NewRegistry(),
		Logger:              logger,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		CheckpointInterval:  cfg.CheckpointInterval,
		Checkpoint:          checkpointTo(st, reg),
	})
	if err != nil {
		return nil, nil, err
	}
	return mgr, reg, nil
}
