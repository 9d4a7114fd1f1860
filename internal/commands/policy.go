package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ganpathioverseas/erp_finance/internal/platform/policy"
)

func newPolicyCommand() *cobra.Command {
	policyCmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect the finance policy (tax brackets, cash flow mapping)",
	}
	policyCmd.AddCommand(newPolicyShowCommand())
	policyCmd.AddCommand(newPolicyValidateCommand())
	policyCmd.AddCommand(newPolicyInitCommand())
	return policyCmd
}

func newPolicyShowCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective policy as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := policy.Load(file)
			if err != nil {
				return err
			}
			data, err := policy.Marshal(p)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "policy file (built-in defaults when empty)")

	return cmd
}

func newPolicyValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a policy file parses and its bracket table is usable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := policy.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d income tax brackets, currency %s)\n",
				args[0], len(p.IncomeTaxBrackets), p.Currency)
			return nil
		},
	}
}

func newPolicyInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init <file>",
		Short: "Write the built-in policy to a file as a starting point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := policy.Save(args[0], policy.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}
