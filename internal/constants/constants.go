package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoint and transport defaults.
const (
	// DefaultAPIEndpoint is the production Xendit API.
	DefaultAPIEndpoint = "https://api.xendit.co"

	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultUserAgent is sent when the config does not override it.
	DefaultUserAgent = "xendit-client-go/" + Version

	// ContentTypeJSON is the only content type the API speaks.
	ContentTypeJSON = "application/json"
)

// Version is the library version reported in the User-Agent.
const Version = "0.1.0"

// API paths.
const (
	PathCustomers       = "/customers"
	PathPaymentMethods  = "/v2/payment_methods"
	PathInvoices        = "/v2/invoices"
	PathInvoicesLegacy  = "/invoices"
	PathEWalletCharges  = "/ewallets/charges"
	PathCardCharges     = "/credit_card_charges"
	PathCardTokens      = "/credit_card_tokens"
	PathPayouts         = "/v2/payouts"
	PathPayoutChannels  = "/payouts_channels"
	PathPaymentRequests = "/payment_requests"
	QueryReferenceID    = "reference_id"
)

// CLI defaults.
const (
	// StandardPageSize is the page size used by list commands.
	StandardPageSize = 50

	// MinimumArgumentCount is the minimum number of command line arguments.
	MinimumArgumentCount = 2

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Output formats.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)
