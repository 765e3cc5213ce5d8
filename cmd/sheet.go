package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"elternaccounts/core/forms"
	"elternaccounts/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errFormsNotConfigured = errors.New("forms connection is not configured (FORMS_URL, FORMS_USER, FORMS_PASSWORD, FORMS_FORM_HASH)")

// sheetCmd represents the sheet command
var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Manage the master submission sheet",
}

// sheetMergeCmd represents the sheet merge command
var sheetMergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge the current forms export into the master sheet",
	Long:  `Fetches the forms export, backs up the master sheet and appends submissions whose timestamp is not yet present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		client, err := storage.NewClient(a.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		svc := a.newSheets(client)
		if svc == nil {
			return errFormsNotConfigured
		}

		res, err := svc.Update(cmd.Context(), a.cfg.Accounts.SheetKey, a.cfg.Accounts.BackupPrefix)
		if err != nil {
			return err
		}

		a.logger.Info("Sheet merged",
			zap.String("sheet", a.cfg.Accounts.SheetKey),
			zap.String("backup", res.BackupKey),
			zap.Int("master_rows", res.Stats.MasterRows),
			zap.Int("export_rows", res.Stats.ExportRows),
			zap.Int("added", res.Stats.Added),
			zap.Int("duplicates", res.Stats.Duplicates),
		)
		return nil
	},
}

// sheetFormsCmd represents the sheet forms command
var sheetFormsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List the forms visible to the configured account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if !a.cfg.Forms.Enabled() {
			return errFormsNotConfigured
		}

		list, err := forms.NewClient(a.cfg.Forms, nil).Forms(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(list))
		for _, f := range list {
			expires := "never"
			if f.Expires > 0 {
				expires = time.Unix(f.Expires, 0).Format(time.DateOnly)
			}
			rows = append(rows, []string{strconv.Itoa(f.ID), f.Hash, f.Title, expires})
		}
		fmt.Println(renderTable([]string{"ID", "Hash", "Title", "Expires"}, rows, []columnAlignment{alignRight}))
		return nil
	},
}

// sheetBackupsCmd represents the sheet backups command
var sheetBackupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List sheet backups in storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		client, err := storage.NewClient(a.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		keys, err := storage.List(cmd.Context(), client, a.cfg.Storage.Bucket, a.cfg.Accounts.BackupPrefix)
		if err != nil {
			return err
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sheetCmd)
	sheetCmd.AddCommand(sheetMergeCmd, sheetFormsCmd, sheetBackupsCmd)
}
