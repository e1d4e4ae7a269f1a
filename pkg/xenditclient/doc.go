// Package xenditclient constructs clients that implement the xendit.Client
// interface.
//
// It wires the HTTP transport, Basic authentication with the secret key, the
// optional sub-account header and the optional client-side rate limiter on top
// of the resource interfaces defined in the xendit package.
//
// Quick start
//
//	ctx := context.Background()
//
//	cli, err := xenditclient.New(ctx, &xendit.Config{
//	  SecretKey:   os.Getenv("XENDIT_SECRET_KEY"),
//	  RateLimiter: &xendit.RateLimiterConfig{MaxRequests: 60, Window: time.Minute},
//	})
//	if err != nil { log.Fatal(err) }
//
//	invoice, err := cli.Invoices().Create(ctx, &xendit.InvoiceCreateRequest{
//	  ExternalID: "order-1",
//	  Amount:     50000,
//	})
//
// Lists
//
// Cursor-paginated resources return a *xendit.Page. To walk every page use
// xendit.IterateItems or xendit.FetchAllPages with cli.Transport():
//
//	for pr, err := range xendit.IterateItems[xendit.PaymentRequest](ctx, cli.Transport(), "/payment_requests", nil, nil) {
//	  if err != nil { return err }
//	  fmt.Println(pr.ID)
//	}
//
// Errors
//
// Failures are reported as *xendit.ValidationError for local input problems
// and *xendit.APIError otherwise. Use xendit.IsNotFound, xendit.IsUnauthorized
// and xendit.IsRateLimited to classify them.
package xenditclient
