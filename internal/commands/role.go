package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
)

func newRoleCommand() *cobra.Command {
	roleCmd := &cobra.Command{
		Use:   "role",
		Short: "Manage finance roles",
	}
	roleCmd.AddCommand(newRoleGrantCommand())
	roleCmd.AddCommand(newRoleShowCommand())
	return roleCmd
}

func newRoleGrantCommand() *cobra.Command {
	var actingUserID string

	cmd := &cobra.Command{
		Use:   "grant <userID> <ADMIN|ACCOUNTANT|VIEWER>",
		Short: "Assign a finance role to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := domain.UserRole(strings.ToUpper(args[1]))
			if !role.IsValid() {
				return fmt.Errorf("unknown role %q", args[1])
			}

			a, ctx, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			assignment, err := a.services.Roles.AssignRole(ctx, actingUserID, args[0], role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s (assigned by %s)\n",
				assignment.UserID, assignment.Role, assignment.AssignedBy)
			return nil
		},
	}
	cmd.Flags().StringVar(&actingUserID, "as", "", "admin user performing the assignment (required)")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func newRoleShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <userID>",
		Short: "Print the finance role of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			role, err := a.services.Roles.GetUserRole(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), role)
			return nil
		},
	}
}
