package commands

import (
	"fmt"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewPaymentMethodsCommand creates the payment-methods command group.
func NewPaymentMethodsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment-methods",
		Aliases: []string{"payment-method", "pm"},
		Short:   "Inspect payment methods",
		Long:    "List and inspect stored payment methods",
	}

	cmd.AddCommand(newPaymentMethodsListCommand())

	return cmd
}

// PaymentMethodsListOptions holds the options for listing payment methods.
type PaymentMethodsListOptions struct {
	CustomerID string
	Types      []string
	Limit      int
	MaxItems   int
	MaxPages   int
}

func newPaymentMethodsListCommand() *cobra.Command {
	var opts PaymentMethodsListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payment methods",
		Long:  "List payment methods across all pages, bounded by --max-pages and --max-items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaymentMethodsList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.CustomerID, "customer-id", "", "filter by customer ID")
	cmd.Flags().StringSliceVar(&opts.Types, "type", nil, "filter by type (EWALLET, CARD, VIRTUAL_ACCOUNT, ...)")
	cmd.Flags().IntVar(&opts.Limit, "limit", constants.StandardPageSize, "results per page")
	cmd.Flags().IntVar(&opts.MaxItems, "max-items", 0, "stop after this many payment methods (0 for no limit)")
	cmd.Flags().IntVar(&opts.MaxPages, "max-pages", xendit.DefaultMaxPages, "stop after this many pages")

	return cmd
}

func runPaymentMethodsList(cmd *cobra.Command, opts PaymentMethodsListOptions) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	params := &xendit.PaymentMethodListParams{CustomerID: opts.CustomerID, Limit: opts.Limit}
	for _, t := range opts.Types {
		paymentType := xendit.PaymentMethodType(t)
		if _, ok := paymentType.VariantKey(); !ok {
			return fmt.Errorf("%w: unknown payment method type %q", ErrInvalidFlagValue, t)
		}

		params.Types = append(params.Types, paymentType)
	}

	client, err := CreateClient(cmd)
	if err != nil {
		return err
	}

	methods, err := xendit.FetchAllPages[xendit.PaymentMethod](cmdContext(cmd), client.Transport(),
		constants.PathPaymentMethods, params.ListOptions(),
		&xendit.PaginationOptions{MaxPages: opts.MaxPages, MaxItems: opts.MaxItems})
	if err != nil {
		return fmt.Errorf("failed to list payment methods: %w", err)
	}

	if format == constants.FormatTable && len(methods) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No payment methods found")

		return nil
	}

	return render(cmd.OutOrStdout(), format, methods, func(table *tablewriter.Table) {
		table.Header("ID", "Type", "Reusability", "Status", "Customer")

		for _, method := range methods {
			_ = table.Append(method.ID, string(method.Type), method.Reusability, method.Status, valueOrNA(method.CustomerID))
		}
	})
}
