package cli

import (
	"fmt"

	"github.com/me/seasonsim/internal/checkpoint"
	"github.com/me/seasonsim/internal/config"
	"github.com/spf13/cobra"
)

func newCheckpointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoints",
		Short: "Inspect saved checkpoints",
	}
	cmd.AddCommand(newCheckpointsListCmd(), newCheckpointsDeleteCmd())
	return cmd
}

func openStore(cmd *cobra.Command, dbPath string) (*checkpoint.SQLiteStore, error) {
	if dbPath == "" {
		dbPath = config.Default().DBPath
	}
	store, err := checkpoint.NewSQLiteStore(dbPath, logger)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(cmd.Context()); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func newCheckpointsListCmd() *cobra.Command {
	var (
		flagDB  string
		flagRun string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List checkpoints, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, flagDB)
			if err != nil {
				return err
			}
			defer store.Close()

			cps, err := store.List(cmd.Context(), flagRun)
			if err != nil {
				return err
			}
			if len(cps) == 0 {
				fmt.Println("No checkpoints.")
				return nil
			}

			fmt.Printf("%-42s  %-12s  %-10s  %4s  %s\n", "ID", "LABEL", "SIM DATE", "WEEK", "RUN")
			for _, cp := range cps {
				fmt.Printf("%-42s  %-12s  %-10s  %4d  %s\n",
					cp.ID, cp.Label, cp.SimDate.Format("2006-01-02"), cp.Week, cp.RunID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagDB, "db", "", "Checkpoint database path")
	cmd.Flags().StringVar(&flagRun, "run", "", "Restrict to one run id")

	return cmd
}

func newCheckpointsDeleteCmd() *cobra.Command {
	var flagDB string

	cmd := &cobra.Command{
		Use:   "delete <checkpoint-id>",
		Short: "Delete a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, flagDB)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&flagDB, "db", "", "Checkpoint database path")

	return cmd
}
