package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"elternaccounts/core/roster"
	"elternaccounts/feature/accounts"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Reconcile local files",
	Long:  `Matches a local submission sheet against a local registry export and writes both outputs to a directory. Storage and the ledger are not used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		formsPath, _ := cmd.Flags().GetString("forms")
		registryPath, _ := cmd.Flags().GetString("registry")
		outDir, _ := cmd.Flags().GetString("out")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		gen, err := a.newGenerator()
		if err != nil {
			return err
		}

		subsFile, err := os.Open(formsPath)
		if err != nil {
			return fmt.Errorf("failed to open forms file: %w", err)
		}
		defer subsFile.Close()

		regFile, err := os.Open(registryPath)
		if err != nil {
			return fmt.Errorf("failed to open registry file: %w", err)
		}
		defer regFile.Close()

		subs, err := roster.ReadSubmissions(subsFile)
		if err != nil {
			return err
		}
		records, err := roster.ReadRegistry(regFile)
		if err != nil {
			return err
		}

		result, err := a.newEngine(gen, nil).Run(cmd.Context(), subs, records)
		if err != nil {
			return err
		}

		out, err := accounts.Render(result)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
		files := map[string][]byte{
			filepath.Base(a.cfg.Accounts.AuditKey):    out.Audit,
			filepath.Base(a.cfg.Accounts.AccountsKey): out.Accounts,
		}
		for name, data := range files {
			target := filepath.Join(outDir, name)
			if err := os.WriteFile(target, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}
			a.logger.Info("Output written", zap.String("file", target), zap.Int("lines", bytes.Count(data, []byte("\n"))))
		}

		fmt.Println(summaryTable(result.Summary))
		if ambiguous := result.AmbiguousEntries(); len(ambiguous) > 0 {
			fmt.Println("\nMatches needing review:")
			fmt.Println(ambiguousTable(ambiguous))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(matchCmd)
	matchCmd.Flags().String("forms", "", "Submission sheet (comma separated)")
	matchCmd.Flags().String("registry", "", "Registry export (semicolon separated)")
	matchCmd.Flags().String("out", ".", "Output directory")
	_ = matchCmd.MarkFlagRequired("forms")
	_ = matchCmd.MarkFlagRequired("registry")
}
