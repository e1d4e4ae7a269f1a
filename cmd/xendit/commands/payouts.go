package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewPayoutsCommand creates the payouts command group.
func NewPayoutsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payouts",
		Aliases: []string{"payout"},
		Short:   "Inspect payouts",
		Long:    "Inspect payouts and the channels available for disbursement",
	}

	cmd.AddCommand(newPayoutsGetCommand())
	cmd.AddCommand(newPayoutsListCommand())
	cmd.AddCommand(newPayoutsChannelsCommand())

	return cmd
}

func newPayoutsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PAYOUT_ID",
		Short: "Get payout details",
		Long:  "Display detailed information about a specific payout",
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

			payout, err := client.Payouts().Get(cmdContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get payout: %w", err)
			}

			return render(cmd.OutOrStdout(), format, payout, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", payout.ID)
				_ = table.Append("Reference ID", payout.ReferenceID)
				_ = table.Append("Status", payout.Status)
				_ = table.Append("Amount", formatAmount(payout.Amount, payout.Currency))
				_ = table.Append("Channel", payout.ChannelCode)
				_ = table.Append("Failure Code", valueOrNA(payout.FailureCode))
				_ = table.Append("Estimated Arrival", valueOrNA(payout.EstimatedArrival))
				_ = table.Append("Created", formatTime(payout.Created))
			})
		},
	}
}

func newPayoutsListCommand() *cobra.Command {
	var referenceID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payouts by reference ID",
		Long:  "List the payouts created with a reference ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			if referenceID == "" {
				return fmt.Errorf("%w: --reference-id is required", ErrInvalidFlagValue)
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			payouts, err := client.Payouts().ListByReferenceID(cmdContext(cmd), referenceID)
			if err != nil {
				return fmt.Errorf("failed to list payouts: %w", err)
			}

			if format == constants.FormatTable && len(payouts) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No payouts found")

				return nil
			}

			return render(cmd.OutOrStdout(), format, payouts, func(table *tablewriter.Table) {
				table.Header("ID", "Status", "Amount", "Channel", "Created")

				for _, payout := range payouts {
					_ = table.Append(payout.ID, payout.Status, formatAmount(payout.Amount, payout.Currency),
						payout.ChannelCode, formatTime(payout.Created))
				}
			})
		},
	}

	cmd.Flags().StringVar(&referenceID, "reference-id", "", "reference ID the payouts were created with")

	return cmd
}

// PayoutChannelsOptions holds the options for listing payout channels.
type PayoutChannelsOptions struct {
	Currency    string
	Categories  []string
	ChannelCode string
}

func newPayoutsChannelsCommand() *cobra.Command {
	var opts PayoutChannelsOptions

	cmd := &cobra.Command{
		Use:   "channels",
		Short: "List payout channels",
		Long:  "List the banks and e-wallets payouts can be sent to",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			channels, err := client.Payouts().ListChannels(cmdContext(cmd), &xendit.PayoutChannelParams{
				Currency:        opts.Currency,
				ChannelCategory: opts.Categories,
				ChannelCode:     opts.ChannelCode,
			})
			if err != nil {
				return fmt.Errorf("failed to list payout channels: %w", err)
			}

			return render(cmd.OutOrStdout(), format, channels, func(table *tablewriter.Table) {
				table.Header("Code", "Name", "Category", "Currency", "Limits")

				for _, channel := range channels {
					_ = table.Append(channel.ChannelCode, channel.ChannelName, channel.ChannelCategory,
						channel.Currency, formatLimits(channel.AmountLimits))
				}
			})
		},
	}

	cmd.Flags().StringVar(&opts.Currency, "currency", "", "filter by currency")
	cmd.Flags().StringSliceVar(&opts.Categories, "category", nil, "filter by category (BANK, EWALLET, OTC)")
	cmd.Flags().StringVar(&opts.ChannelCode, "channel-code", "", "filter by channel code")

	return cmd
}

func formatLimits(limits map[string]float64) string {
	if len(limits) == 0 {
		return constants.NotAvailable
	}

	keys := make([]string, 0, len(limits))
	for key := range limits {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+formatAmount(limits[key], ""))
	}

	return strings.Join(parts, " ")
}
