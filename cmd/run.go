package cmd

import (
	"fmt"

	"elternaccounts/feature/accounts"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reconcile the submission sheet against the registry export in storage",
	Long: `Merges the current forms export into the master sheet, matches every verified
submission against the registry export and uploads the control and accounts files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if noMerge, _ := cmd.Flags().GetBool("no-merge"); noMerge {
			a.cfg.Accounts.MergeForms = false
		}
		if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
			a.cfg.Accounts.OutputDir = dir
		}

		deps, _, err := a.accountsDeps(cmd.Context(), nil)
		if err != nil {
			return err
		}

		report, err := accounts.NewService(deps).Run(cmd.Context(), accounts.SourceCLI)
		if err != nil {
			return err
		}

		fmt.Println(summaryTable(report.Summary))
		if len(report.Ambiguous) > 0 {
			fmt.Println("\nMatches needing review:")
			fmt.Println(ambiguousTable(report.Ambiguous))
		}
		for _, d := range report.Drift {
			a.logger.Warn("Username changed since an earlier run",
				zap.String("email", d.Email),
				zap.String("previous", d.Previous),
				zap.String("current", d.Current),
			)
		}
		fmt.Printf("\nControl file: %s\nAccounts file: %s\n", report.AuditKey, report.AccountsKey)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("no-merge", false, "Skip merging the forms export into the sheet")
	runCmd.Flags().String("output-dir", "", "Also write both outputs to this local directory")
}
