package cmd

import (
	"fmt"
	"os"
	"strings"

	"elternaccounts/core/storage"
	"elternaccounts/feature/mail"

	"github.com/spf13/cobra"
)

// emailsCmd represents the emails command
var emailsCmd = &cobra.Command{
	Use:   "emails [file...]",
	Short: "Collect parent e-mail addresses",
	Long: `Prints the distinct e-mail addresses found in the given files. Without files the
accounts output in storage is read.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sep, _ := cmd.Flags().GetString("separator")

		var texts []string
		if len(args) > 0 {
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				texts = append(texts, string(data))
			}
		} else {
			a, err := newApp()
			if err != nil {
				return err
			}
			client, err := storage.NewClient(a.cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
			obj, err := storage.Download(cmd.Context(), client, a.cfg.Storage.Bucket, a.cfg.Accounts.AccountsKey)
			if err != nil {
				return err
			}
			texts = append(texts, string(obj.Data))
		}

		addresses := mail.ExtractAddresses(strings.Join(texts, "\n"))
		fmt.Println(strings.Join(addresses, sep))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(emailsCmd)
	emailsCmd.Flags().String("separator", "; ", "Separator between addresses")
}
