package cli

import (
	"encoding/json"
	"fmt"

	"github.com/me/seasonsim/internal/checkpoint"
	"github.com/me/seasonsim/internal/config"
	"github.com/me/seasonsim/internal/season"
	"github.com/spf13/cobra"
)

func newStandingsCmd() *cobra.Command {
	var (
		flagDB  string
		flagRun string
	)

	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print standings from the latest saved checkpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := flagDB
			if dbPath == "" {
				dbPath = config.Default().DBPath
			}

			store, err := checkpoint.NewSQLiteStore(dbPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}

			cp, err := store.Latest(cmd.Context(), flagRun)
			if err != nil {
				return err
			}
			if cp == nil {
				return fmt.Errorf("no checkpoints in %s", dbPath)
			}

			var snap season.Snapshot
			if err := json.Unmarshal(cp.Season, &snap); err != nil {
				return fmt.Errorf("decode season snapshot: %w", err)
			}
			state := season.NewState(logger)
			state.Restore(&snap)

			fmt.Printf("Run %s, week %d (as of %s)\n\n",
				cp.RunID, cp.Week, cp.SimDate.Format("2006-01-02"))
			printStandings(state.Standings())
			return nil
		},
	}

	cmd.Flags().StringVar(&flagDB, "db", "", "Checkpoint database path")
	cmd.Flags().StringVar(&flagRun, "run", "", "Restrict to one run id (default: latest of any run)")

	return cmd
}
