package cmd

import (
	"fmt"

	"elternaccounts/core/username"

	"github.com/spf13/cobra"
)

// usernameCmd represents the username command
var usernameCmd = &cobra.Command{
	Use:   "username <given name> <family name>",
	Short: "Derive a username",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("style")
		style, err := username.ParseStyle(raw)
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		gen, err := a.newGenerator()
		if err != nil {
			return err
		}

		fmt.Println(gen.Username(args[0], args[1], style))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(usernameCmd)
	usernameCmd.Flags().String("style", string(username.StyleDotted), "Username style: dotted or short")
}
