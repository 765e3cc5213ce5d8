package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"elternaccounts/core/storage"
	"elternaccounts/feature/integrity"
	"elternaccounts/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage and the run ledger",
	Long:  `Checks that the bucket has the expected folders, that the input files carry the required columns and that the ledger schema is complete.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the bucket and folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// inputsCmd represents the integrity inputs command
var inputsCmd = &cobra.Command{
	Use:   "inputs",
	Short: "Check the submission sheet and the registry export",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// ledgerCmd represents the integrity ledger command
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Check the run ledger schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, inputsCmd, ledgerCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the missing bucket and folders")
}

func runIntegrityChecks(ctx context.Context, runStructure, runInputs, runLedger bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	logg := a.logger
	defer logg.Sync()

	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	_, db := a.openLedger(ctx)
	svc := integrity.NewService(client, a.cfg.Storage.Bucket, a.cfg.Accounts, logg, db)

	if runStructure {
		if err := checkStructure(ctx, svc, logg); err != nil {
			return err
		}
	}

	if runInputs {
		logg.Info("Checking input files...")
		reports, err := svc.CheckInputs(ctx)
		if err != nil {
			return fmt.Errorf("input check failed: %w", err)
		}

		rows := make([][]string, 0, len(reports))
		for _, r := range reports {
			rows = append(rows, []string{r.Key, r.Status, r.Encoding, strconv.Itoa(r.Rows), strings.Join(r.MissingColumns, ", ") + r.Error})
		}
		fmt.Fprintln(os.Stdout, renderTable(
			[]string{"Object", "Status", "Encoding", "Rows", "Problems"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
		))
	}

	if runLedger {
		if !svc.HasLedger() {
			logg.Warn("Run ledger is not configured, skipping schema check")
			return nil
		}

		logg.Info("Checking ledger schema...")
		report, err := svc.CheckLedger()
		if err != nil {
			return fmt.Errorf("ledger check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Ledger schema matches expected definition.")
			return nil
		}

		logg.Warn("Ledger schema mismatches found")
		for table, tbl := range report.Tables {
			if tbl.Status != "ok" {
				logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
			}
		}
		for _, e := range report.Errors {
			logg.Error("Inspection Error", zap.String("error", e))
		}
	}
	return nil
}

func checkStructure(ctx context.Context, svc *integrity.Service, logg *zap.Logger) error {
	logg.Info("Checking folder structure...")
	missing, err := svc.CheckStructure(ctx)
	if errors.Is(err, checks.ErrBucketMissing) && fixFlag {
		if err := svc.FixBucket(ctx); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		missing, err = svc.CheckStructure(ctx)
	}
	if err != nil {
		return fmt.Errorf("structure check failed: %w", err)
	}

	if len(missing) == 0 {
		logg.Info("Structure is intact.")
		return nil
	}

	logg.Warn("Missing folders detected", zap.Strings("missing", missing))
	if !fixFlag {
		logg.Info("Run 'integrity structure --fix' to create missing folders.")
		return nil
	}

	logg.Info("Fixing missing folders...")
	if err := svc.FixStructure(ctx, missing); err != nil {
		return fmt.Errorf("failed to fix structure: %w", err)
	}
	logg.Info("Structure fixed successfully.")
	return nil
}
