// Package keyline provides types, interfaces, and helpers for working with
// the Keyline license-management API.
//
// # Overview
//
// The keyline package defines the domain types (e.g., License, User, Machine,
// Policy, Webhook) and the interfaces for resource-oriented clients (e.g.,
// LicensesClient, UsersClient). A concrete implementation of these clients is
// provided by the klclient package, which wires configuration, transport, and
// authentication. Most consumers should import klclient to construct a client
// and then interact with the resource client interfaces exposed here.
//
// Getting a client
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
//	  cli, err := klclient.New(&keyline.Config{
//	    Endpoint:  "https://api.keyline.sh",
//	    AccountID: "my-account",
//	    Token:     "admin-xxx",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // List the first page of licenses
//	  licenses, err := cli.Licenses().List(ctx, &keyline.LicenseListOptions{
//	    ListOptions: keyline.ListOptions{Page: keyline.PageOptions{Size: 50}},
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = licenses
//	}
//
// # Queries and pagination
//
// Per-kind list option types (LicenseListOptions, UserListOptions, ...)
// express pagination and filters and encode to a canonical, deterministic
// query string. The package also provides helpers for iterating or collecting
// paginated results:
//
//	fetch := func(ctx context.Context, page keyline.PageOptions) (*keyline.ListResponse[keyline.License], error) {
//	  return cli.Licenses().List(ctx, &keyline.LicenseListOptions{ListOptions: keyline.ListOptions{Page: page}})
//	}
//	it := keyline.NewPageIterator(ctx, fetch, 50)
//	for it.HasNext() {
//	  lic, err := it.Next()
//	  if err != nil { break }
//	  _ = lic
//	}
//
// # Errors
//
// Failed calls return an *APIError carrying a closed ErrorKind taxonomy and
// the full JSON:API error list from the server. Helpers such as IsNotFound,
// IsValidationFailed, and IsRateLimited make it easy to branch on common
// cases without inspecting raw HTTP shapes.
//
// # Relationships
//
// Resources reference each other through Relationship values holding
// {id, type} identifiers and a links.related URL. When a response carries an
// `included` array, the Included helpers resolve references in place without
// another request; otherwise RelatedURL points at the explicit follow-up.
package keyline
