package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "me",
		Aliases: []string{"whoami"},
		Short:   "Show the current user",
		Long: `Retrieve the user associated with the API token.

This is useful for verifying your authentication.

Example:
  cnv me`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}

			user, err := client.GetSelf(ctx)
			if err != nil {
				return fmt.Errorf("failed to get user info: %w", err)
			}

			printer := printerForContext(ctx)
			return printer.Print(ctx, user)
		},
	}
}
