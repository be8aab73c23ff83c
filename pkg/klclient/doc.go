// Package klclient provides the primary entry point for constructing a
// licensing API client that implements the keyline.Client interface.
//
// It layers configuration, HTTP transport, and session handling on top of
// the resource interfaces and types defined in the keyline package. Most
// applications should import klclient to build a client, then use the
// returned keyline.Client to access resource-specific clients, for example
// Licenses(), Machines(), Users(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/keyline-io/keyline-go/pkg/keyline"
//	  "github.com/keyline-io/keyline-go/pkg/klclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: endpoint and account (unauthenticated, ping only).
//	  cli, err := klclient.New(ctx, &keyline.Config{
//	    Endpoint:  "https://api.example.com",
//	    AccountID: "acct-1",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a token you already have:
//	  cli, err = klclient.New(ctx, &keyline.Config{
//	    Endpoint:  "https://api.example.com",
//	    AccountID: "acct-1",
//	    Token:     "admin-93f3...", // admin or environment token
//	  })
//
//	  // Or with email/password. The credentials are exchanged for a bearer
//	  // token before New returns and are not retained afterwards.
//	  cli, err = klclient.New(ctx, &keyline.Config{
//	    Endpoint:  "https://api.example.com",
//	    AccountID: "acct-1",
//	    Email:     "admin@example.com",
//	    Password:  "hunter2",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the keyline.Client interface
//	  licenses, err := cli.Licenses().List(ctx, &keyline.LicenseListOptions{
//	    ListOptions: keyline.ListOptions{Page: keyline.PageOptions{Size: 10}},
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = licenses
//	}
//
// # TLS and development mode
//
// For local development, you can set Config.SkipTLSVerify=true. This is gated
// by the environment variable KEYLINE_DEV_MODE to avoid accidental insecure
// usage in production environments.
//
// # Helpers
//
// The package also provides convenience constructors NewWithToken and
// NewWithCredentials that wrap New with the appropriate configuration.
package klclient
