package commands

import (
	"fmt"

	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewCustomersCommand creates the customers command group.
func NewCustomersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Inspect customers",
		Long:    "Look up customers by ID or reference ID",
	}

	cmd.AddCommand(newCustomersGetCommand())
	cmd.AddCommand(newCustomersFindCommand())

	return cmd
}

func newCustomersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CUSTOMER_ID",
		Short: "Get customer details",
		Long:  "Display detailed information about a specific customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			customer, err := client.Customers().Get(cmdContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get customer: %w", err)
			}

			return render(cmd.OutOrStdout(), format, customer, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", customer.ID)
				_ = table.Append("Reference ID", customer.ReferenceID)
				_ = table.Append("Type", customer.Type)
				_ = table.Append("Name", customerName(customer))
				_ = table.Append("Email", valueOrNA(customer.Email))
				_ = table.Append("Mobile", valueOrNA(customer.MobileNumber))
				_ = table.Append("Created", formatTime(customer.Created))
			})
		},
	}
}

func newCustomersFindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find REFERENCE_ID",
		Short: "Find customers by reference ID",
		Long:  "List the customers registered under a reference ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			customers, err := client.Customers().GetByReferenceID(cmdContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to find customers: %w", err)
			}

			return render(cmd.OutOrStdout(), format, customers, func(table *tablewriter.Table) {
				table.Header("ID", "Reference ID", "Type", "Name", "Email")

				for i := range customers {
					c := &customers[i]
					_ = table.Append(c.ID, c.ReferenceID, c.Type, customerName(c), valueOrNA(c.Email))
				}
			})
		},
	}
}

func customerName(customer *xendit.Customer) string {
	switch {
	case customer.IndividualDetail != nil:
		name := customer.IndividualDetail.GivenNames
		if customer.IndividualDetail.Surname != "" {
			name += " " + customer.IndividualDetail.Surname
		}

		return valueOrNA(name)
	case customer.BusinessDetail != nil:
		return valueOrNA(customer.BusinessDetail.BusinessName)
	default:
		return valueOrNA("")
	}
}
