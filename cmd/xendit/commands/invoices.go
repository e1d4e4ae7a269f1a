package commands

import (
	"fmt"
	"time"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewInvoicesCommand creates the invoices command group.
func NewInvoicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoices",
		Aliases: []string{"invoice", "inv"},
		Short:   "Manage invoices",
		Long:    "List and inspect Xendit invoices",
	}

	cmd.AddCommand(newInvoicesListCommand())
	cmd.AddCommand(newInvoicesGetCommand())
	cmd.AddCommand(newInvoicesExpireCommand())

	return cmd
}

// InvoicesListOptions holds the options for listing invoices.
type InvoicesListOptions struct {
	Statuses      []string
	ExternalID    string
	CreatedAfter  string
	CreatedBefore string
	Limit         int
	MaxItems      int
	AllPages      bool
}

func newInvoicesListCommand() *cobra.Command {
	var opts InvoicesListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Long:  "List invoices, newest first. Use --all to follow the last_invoice_id cursor.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvoicesList(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Statuses, "status", nil, "filter by status (PENDING, PAID, SETTLED, EXPIRED)")
	cmd.Flags().StringVar(&opts.ExternalID, "external-id", "", "filter by external ID")
	cmd.Flags().StringVar(&opts.CreatedAfter, "created-after", "", "only invoices created after this RFC 3339 time")
	cmd.Flags().StringVar(&opts.CreatedBefore, "created-before", "", "only invoices created before this RFC 3339 time")
	cmd.Flags().IntVar(&opts.Limit, "limit", constants.StandardPageSize, "results per page")
	cmd.Flags().IntVar(&opts.MaxItems, "max-items", 0, "stop after this many invoices (0 for no limit)")
	cmd.Flags().BoolVar(&opts.AllPages, "all", false, "fetch all pages")

	return cmd
}

func (o InvoicesListOptions) params() (*xendit.InvoiceListParams, error) {
	params := &xendit.InvoiceListParams{
		ExternalID: o.ExternalID,
		Statuses:   o.Statuses,
		Limit:      o.Limit,
	}

	for _, status := range o.Statuses {
		switch status {
		case xendit.InvoiceStatusPending, xendit.InvoiceStatusPaid, xendit.InvoiceStatusSettled, xendit.InvoiceStatusExpired:
		default:
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidStatus, status)
		}
	}

	var err error

	params.CreatedAfter, err = parseTimeFlag("created-after", o.CreatedAfter)
	if err != nil {
		return nil, err
	}

	params.CreatedBefore, err = parseTimeFlag("created-before", o.CreatedBefore)
	if err != nil {
		return nil, err
	}

	return params, nil
}

func runInvoicesList(cmd *cobra.Command, opts InvoicesListOptions) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	params, err := opts.params()
	if err != nil {
		return err
	}

	client, err := CreateClient(cmd)
	if err != nil {
		return err
	}

	ctx := cmdContext(cmd)

	var invoices []xendit.Invoice

	for {
		page, err := client.Invoices().List(ctx, params)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		invoices = append(invoices, page...)

		if opts.MaxItems > 0 && len(invoices) >= opts.MaxItems {
			invoices = invoices[:opts.MaxItems]

			break
		}

		if !opts.AllPages || len(page) == 0 || (params.Limit > 0 && len(page) < params.Limit) {
			break
		}

		params.LastInvoiceID = page[len(page)-1].ID
	}

	if format == constants.FormatTable && len(invoices) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No invoices found")

		return nil
	}

	return render(cmd.OutOrStdout(), format, invoices, func(table *tablewriter.Table) {
		table.Header("ID", "External ID", "Status", "Amount", "Created")

		for _, invoice := range invoices {
			_ = table.Append(invoice.ID, invoice.ExternalID, invoice.Status,
				formatAmount(invoice.Amount, invoice.Currency), formatTime(invoice.Created))
		}
	})
}

func newInvoicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get INVOICE_ID",
		Short: "Get invoice details",
		Long:  "Display detailed information about a specific invoice",
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

			invoice, err := client.Invoices().Get(cmdContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get invoice: %w", err)
			}

			return renderInvoice(cmd, format, invoice)
		},
	}
}

func newInvoicesExpireCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expire INVOICE_ID",
		Short: "Expire an invoice",
		Long:  "Expire a pending invoice so it can no longer be paid",
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

			invoice, err := client.Invoices().Expire(cmdContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to expire invoice: %w", err)
			}

			return renderInvoice(cmd, format, invoice)
		},
	}
}

func renderInvoice(cmd *cobra.Command, format string, invoice *xendit.Invoice) error {
	return render(cmd.OutOrStdout(), format, invoice, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("ID", invoice.ID)
		_ = table.Append("External ID", invoice.ExternalID)
		_ = table.Append("Status", invoice.Status)
		_ = table.Append("Amount", formatAmount(invoice.Amount, invoice.Currency))
		_ = table.Append("Paid Amount", formatOptionalAmount(invoice.PaidAmount, invoice.Currency))
		_ = table.Append("URL", valueOrNA(invoice.InvoiceURL))
		_ = table.Append("Expires", formatTime(invoice.ExpiryDate))
		_ = table.Append("Created", formatTime(invoice.Created))
	})
}

func parseTimeFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil //nolint:nilnil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}

	return &parsed, nil
}
