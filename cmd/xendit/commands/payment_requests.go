package commands

import (
	"fmt"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewPaymentRequestsCommand creates the payment-requests command group.
func NewPaymentRequestsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment-requests",
		Aliases: []string{"payment-request", "pr"},
		Short:   "Manage payment requests",
		Long:    "List and inspect payment requests",
	}

	cmd.AddCommand(newPaymentRequestsListCommand())
	cmd.AddCommand(newPaymentRequestsGetCommand())

	return cmd
}

// PaymentRequestsListOptions holds the options for listing payment requests.
type PaymentRequestsListOptions struct {
	ReferenceIDs []string
	CustomerID   string
	Limit        int
	MaxItems     int
	AllPages     bool
}

func newPaymentRequestsListCommand() *cobra.Command {
	var opts PaymentRequestsListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payment requests",
		Long:  "List payment requests. With --all or --max-items the cursor is followed lazily.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaymentRequestsList(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.ReferenceIDs, "reference-id", nil, "filter by reference ID (repeatable)")
	cmd.Flags().StringVar(&opts.CustomerID, "customer-id", "", "filter by customer ID")
	cmd.Flags().IntVar(&opts.Limit, "limit", constants.StandardPageSize, "results per page")
	cmd.Flags().IntVar(&opts.MaxItems, "max-items", 0, "stop after this many payment requests (0 for no limit)")
	cmd.Flags().BoolVar(&opts.AllPages, "all", false, "fetch all pages")

	return cmd
}

func runPaymentRequestsList(cmd *cobra.Command, opts PaymentRequestsListOptions) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	client, err := CreateClient(cmd)
	if err != nil {
		return err
	}

	ctx := cmdContext(cmd)
	params := &xendit.PaymentRequestListParams{
		ReferenceIDs: opts.ReferenceIDs,
		CustomerID:   opts.CustomerID,
		Limit:        opts.Limit,
	}

	var (
		paymentRequests []xendit.PaymentRequest
		truncated       bool
	)

	if opts.AllPages || opts.MaxItems > 0 {
		items := xendit.IterateItems[xendit.PaymentRequest](ctx, client.Transport(), constants.PathPaymentRequests,
			params.ListOptions(), &xendit.PaginationOptions{MaxItems: opts.MaxItems})

		for paymentRequest, err := range items {
			if err != nil {
				return fmt.Errorf("failed to list payment requests: %w", err)
			}

			paymentRequests = append(paymentRequests, paymentRequest)
		}
	} else {
		page, err := client.PaymentRequests().List(ctx, params)
		if err != nil {
			return fmt.Errorf("failed to list payment requests: %w", err)
		}

		paymentRequests = page.Data
		truncated = page.HasMore
	}

	if format == constants.FormatTable && len(paymentRequests) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No payment requests found")

		return nil
	}

	err = render(cmd.OutOrStdout(), format, paymentRequests, func(table *tablewriter.Table) {
		table.Header("ID", "Reference ID", "Status", "Amount", "Method", "Created")

		for _, pr := range paymentRequests {
			method := constants.NotAvailable
			if pr.PaymentMethod != nil {
				method = string(pr.PaymentMethod.Type)
			}

			_ = table.Append(pr.ID, pr.ReferenceID, pr.Status,
				formatOptionalAmount(pr.Amount, pr.Currency), method, formatTime(pr.Created))
		}
	})
	if err != nil {
		return err
	}

	if truncated && format == constants.FormatTable {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nMore results available. Use --all or --max-items to fetch them.")
	}

	return nil
}

func newPaymentRequestsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PAYMENT_REQUEST_ID",
		Short: "Get payment request details",
		Long:  "Display detailed information about a specific payment request",
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

			pr, err := client.PaymentRequests().Get(cmdContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get payment request: %w", err)
			}

			return render(cmd.OutOrStdout(), format, pr, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", pr.ID)
				_ = table.Append("Reference ID", valueOrNA(pr.ReferenceID))
				_ = table.Append("Status", pr.Status)
				_ = table.Append("Amount", formatOptionalAmount(pr.Amount, pr.Currency))
				_ = table.Append("Capture Method", valueOrNA(pr.CaptureMethod))
				_ = table.Append("Failure Code", valueOrNA(pr.FailureCode))

				if pr.PaymentMethod != nil {
					_ = table.Append("Payment Method", pr.PaymentMethod.ID+" ("+string(pr.PaymentMethod.Type)+")")
				}

				for _, action := range pr.Actions {
					_ = table.Append("Action", action.Action+" "+action.URL)
				}

				_ = table.Append("Created", formatTime(pr.Created))
			})
		},
	}
}
