package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"gstplayer/internal/config"
	"gstplayer/internal/gstbackend"
	"gstplayer/internal/journal"
	"gstplayer/internal/logging"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var pipeline string
	var state string
	var propertiesFile string
	var duration time.Duration
	var exitOnEOS bool
	var noJournal bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run the configured pipeline and apply property updates",
		Long: "Launch the configured pipeline, apply the property tree, and keep\n" +
			"forwarding deltas whenever the properties file changes. Stops on\n" +
			"SIGINT/SIGTERM, after --duration, or at end of stream with --exit-on-eos.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyPlayOverrides(cfg, pipeline, state, propertiesFile, noJournal)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.RequirePipeline(); err != nil {
				return err
			}

			logger, err := ctx.logger()
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			logger = logger.With(logging.String(logging.FieldDebugTag, cfg.Player.DebugTag))

			lock := flock.New(cfg.LockPath())
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !ok {
				return errors.New("another gstplayer instance is already playing from this state directory")
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.Warn("failed to release player lock", logging.Error(err))
				}
			}()

			var store *journal.Store
			if cfg.Journal.Enabled {
				store, err = journal.Open(cfg.JournalPath())
				if err != nil {
					return fmt.Errorf("open journal: %w", err)
				}
				defer store.Close()
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(runCtx, duration)
				defer cancel()
			}

			session := &playSession{
				cfg:       cfg,
				backend:   gstbackend.New(),
				logger:    logger,
				journal:   store,
				out:       cmd.OutOrStdout(),
				exitOnEOS: exitOnEOS,
			}
			return session.run(runCtx)
		},
	}

	cmd.Flags().StringVar(&pipeline, "pipeline", "", "Override player.pipeline")
	cmd.Flags().StringVar(&state, "state", "", "Override player.pipeline_state (null, ready, paused, playing)")
	cmd.Flags().StringVar(&propertiesFile, "properties", "", "Override player.properties_file and watch it")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Stop after this long (0 runs until interrupted)")
	cmd.Flags().BoolVar(&exitOnEOS, "exit-on-eos", false, "Stop when the pipeline reaches end of stream")
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "Do not record forwarded updates")
	return cmd
}

func applyPlayOverrides(cfg *config.Config, pipeline, state, propertiesFile string, noJournal bool) {
	if value := strings.TrimSpace(pipeline); value != "" {
		cfg.Player.Pipeline = value
	}
	if value := strings.TrimSpace(state); value != "" {
		cfg.Player.PipelineState = strings.ToLower(value)
	}
	if value := strings.TrimSpace(propertiesFile); value != "" {
		if expanded, err := config.ExpandPath(value); err == nil {
			value = expanded
		}
		cfg.Player.PropertiesFile = value
		cfg.Watch.Enabled = true
	}
	if noJournal {
		cfg.Journal.Enabled = false
	}
}
