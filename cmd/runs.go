package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent reconciliation runs from the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp()
		if err != nil {
			return err
		}
		store, _ := a.openLedger(cmd.Context())
		if store == nil {
			return errors.New("run ledger is not available; check the DATABASE_* settings")
		}

		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(runs))
		for _, r := range runs {
			rows = append(rows, []string{
				r.StartedAt.Local().Format(time.DateTime),
				r.Source,
				strconv.Itoa(r.Verified),
				strconv.Itoa(r.Children),
				strconv.Itoa(r.Ambiguous),
				strconv.Itoa(r.Accepted),
				r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String(),
				r.ID,
			})
		}
		fmt.Println(renderTable(
			[]string{"Started", "Source", "Verified", "Children", "Ambiguous", "Accepted", "Duration", "Run"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
		))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(runsCmd)
	runsCmd.Flags().Int("limit", 20, "Maximum number of runs")
}
