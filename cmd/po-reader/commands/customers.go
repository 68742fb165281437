package commands

import (
	"encoding/json"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/po-reader/constants"
	"github.com/joseph-ayodele/po-reader/internal/customers"
)

var addReq customers.CreateCustomerRequest

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Manage the customer directory used to name customers",
}

var customersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a customer to the directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.customers.CreateCustomer(ctx, addReq)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	},
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the customer directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := a.customers.ListCustomers(ctx)
		if err != nil {
			return err
		}
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"ID", "Company", "Display Name", "Email", "Web"})
		for _, c := range list {
			table.Append([]string{c.ID.String(), c.CompanyName, c.DisplayName, c.Email, c.WebAddr})
		}
		table.Render()
		return nil
	},
}

var customersLookupCmd = &cobra.Command{
	Use:   "lookup EMAIL",
	Short: "Show the customer name an email address resolves to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.Close()

		name, err := a.matcher.CompanyNameForEmail(ctx, args[0])
		if err != nil {
			return err
		}
		if name == "" {
			name = constants.Unknown
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	},
}

func init() {
	f := customersAddCmd.Flags()
	f.StringVar(&addReq.CompanyName, "company", "", "company name")
	f.StringVar(&addReq.DisplayName, "display-name", "", "display name (defaults to --company)")
	f.StringVar(&addReq.GivenName, "given-name", "", "contact first name")
	f.StringVar(&addReq.FamilyName, "family-name", "", "contact last name")
	f.StringVar(&addReq.Email, "email", "", "contact email")
	f.StringVar(&addReq.WebAddr, "web", "", "company website")

	customersCmd.AddCommand(customersAddCmd, customersListCmd, customersLookupCmd)
	rootCmd.AddCommand(customersCmd)
}
