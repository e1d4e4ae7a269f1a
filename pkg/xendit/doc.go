// Package xendit provides types, interfaces, and helpers for working with the
// Xendit payments API.
//
// # Overview
//
// The xendit package defines the domain types (e.g., Customer, PaymentMethod,
// Invoice, Payout, PaymentRequest) and the interfaces for resource-oriented
// clients (e.g., CustomersClient, InvoicesClient). A concrete implementation is
// provided by the xenditclient package, which wires configuration, transport,
// authentication and rate limiting. Most consumers should import xenditclient
// to construct a client and then use the resource client interfaces exposed
// here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/xendit-client/pkg/xendit"
//	  "github.com/fivetwenty-io/xendit-client/pkg/xenditclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := xenditclient.New(ctx, &xendit.Config{
//	    SecretKey:   "xnd_development_...",
//	    RateLimiter: &xendit.RateLimiterConfig{MaxRequests: 60, Window: time.Minute},
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  invoice, err := cli.Invoices().Get(ctx, "inv-123")
//	  if err != nil { log.Fatal(err) }
//	  _ = invoice
//	}
//
// # Pagination
//
// Cursor-paginated endpoints return a Page. The package provides a Paginator
// for manual walks, FetchAllPages for bounded eager collection, and the lazy
// IteratePages and IterateItems sequences:
//
//	opts := (&xendit.PaymentRequestListParams{Limit: 50}).ListOptions()
//	for pr, err := range xendit.IterateItems[xendit.PaymentRequest](ctx, cli.Transport(), "/payment_requests", opts, nil) {
//	  if err != nil { break }
//	  _ = pr
//	}
//
// # Errors
//
// Every failure returned by a resource client or the pagination helpers is a
// *ValidationError (local input or response shape problems, no request made)
// or an *APIError, possibly wrapped as *AuthenticationError, *NotFoundError or
// *RateLimitError. Helpers such as IsNotFound and IsRateLimited make it easy to
// branch on them.
//
// # Rate limiting
//
// RateLimiter is a token bucket installed into the transport's interceptor
// chain by RateLimitInterceptor and RateLimitResponseInterceptor. Requests
// wait for a token; a 429 backs off for Retry-After before the error is
// returned.
//
// # Webhooks
//
// WebhookVerifier checks callback tokens and HMAC signatures, and
// WebhookHandler wraps both into an http.Handler.
package xendit
