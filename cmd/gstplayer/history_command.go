package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"gstplayer/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var sessionID string
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List property updates forwarded by previous play sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			path := cfg.JournalPath()
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				if jsonOutput {
					return writeJSON(cmd, []journal.Entry{})
				}
				fmt.Fprintln(out, "No journal entries")
				return nil
			}

			store, err := journal.Open(path)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), journal.Filter{SessionID: sessionID, Limit: limit})
			if err != nil {
				return err
			}
			if jsonOutput {
				if entries == nil {
					entries = []journal.Entry{}
				}
				return writeJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No journal entries")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					humanize.Time(entry.RecordedAt),
					shortSession(entry.SessionID),
					entry.Kind,
					strconv.Itoa(entry.Changes),
					truncate(entry.Payload, 60),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "When", "Session", "Kind", "Changes", "Payload"},
				rows,
				0, 4,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Only show entries from this session")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	return cmd
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-1]) + "…"
}
