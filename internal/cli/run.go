package cli

import (
	"fmt"
	"time"

	"github.com/me/seasonsim/internal/checkpoint"
	"github.com/me/seasonsim/internal/config"
	"github.com/me/seasonsim/internal/sim"
	"github.com/me/seasonsim/pkg/model"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		flagConfig   string
		flagSchedule string
		flagFrom     string
		flagTo       string
		flagDB       string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a season simulation from a schedule file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if flagConfig != "" {
				var err error
				cfg, err = config.Load(flagConfig)
				if err != nil {
					return err
				}
			}
			if flagDB != "" {
				cfg.DBPath = flagDB
			}

			sched, err := config.LoadSchedule(flagSchedule)
			if err != nil {
				return err
			}
			if len(sched.Events) == 0 {
				return fmt.Errorf("schedule %s contains no events", flagSchedule)
			}

			from, to, err := runWindow(sched, flagFrom, flagTo)
			if err != nil {
				return err
			}

			store, err := checkpoint.NewSQLiteStore(cfg.DBPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate checkpoint store: %w", err)
			}

			runner := sim.NewRunner(cfg, from, store, logger)
			scheduled, rejected, err := runner.ScheduleAll(sched)
			if err != nil {
				return err
			}
			for _, msg := range rejected {
				fmt.Printf("rejected: %s\n", msg)
			}
			fmt.Printf("Scheduled %d events (%d rejected), simulating %s → %s\n",
				scheduled, len(rejected), from.Format("2006-01-02"), to.Format("2006-01-02"))

			summaries, err := runner.Run(cmd.Context(), to)
			printSummaries(summaries)
			if err != nil {
				return fmt.Errorf("season run %s: %w", runner.RunID(), err)
			}

			fmt.Println()
			printStandings(runner.State().Standings())
			return nil
		},
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Simulation config YAML (defaults apply if omitted)")
	cmd.Flags().StringVar(&flagSchedule, "schedule", "", "Season schedule YAML (required)")
	cmd.Flags().StringVar(&flagFrom, "from", "", "First simulated date (default: earliest scheduled event)")
	cmd.Flags().StringVar(&flagTo, "to", "", "Last simulated date (default: latest scheduled event)")
	cmd.Flags().StringVar(&flagDB, "db", "", "Checkpoint database path (overrides config)")
	cmd.MarkFlagRequired("schedule")

	return cmd
}

// runWindow resolves the simulated date range from flags or the schedule.
func runWindow(sched *config.ScheduleFile, fromFlag, toFlag string) (time.Time, time.Time, error) {
	var from, to time.Time
	for _, ev := range sched.Events {
		d := model.NormalizeDate(ev.Date)
		if from.IsZero() || d.Before(from) {
			from = d
		}
		if to.IsZero() || d.After(to) {
			to = d
		}
	}

	var err error
	if fromFlag != "" {
		if from, err = time.Parse("2006-01-02", fromFlag); err != nil {
			return from, to, fmt.Errorf("parse --from: %w", err)
		}
	}
	if toFlag != "" {
		if to, err = time.Parse("2006-01-02", toFlag); err != nil {
			return from, to, fmt.Errorf("parse --to: %w", err)
		}
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("--to %s is before --from %s",
			to.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	return from, to, nil
}

func printSummaries(summaries []*model.DaySummary) {
	for _, day := range summaries {
		if day.EventsRun == 0 {
			continue
		}
		fmt.Printf("%s  events=%d ok=%d failed=%d hours=%d\n",
			day.Date.Format("2006-01-02"), day.EventsRun, day.Successful, day.Failed, day.TotalDurationHours)
		for _, errMsg := range day.Errors {
			fmt.Printf("    ! %s\n", errMsg)
		}
	}
}

func printStandings(entries []model.StandingsEntry) {
	if len(entries) == 0 {
		fmt.Println("No standings yet.")
		return
	}
	fmt.Printf("%-20s  %3s  %3s  %3s  %6s  %5s\n", "TEAM", "W", "L", "T", "PCT", "DIFF")
	for _, e := range entries {
		fmt.Printf("%-20s  %3d  %3d  %3d  %.3f  %+5d\n",
			e.ParticipantID, e.Wins, e.Losses, e.Ties, e.WinPct, e.PointDiff)
	}
}
