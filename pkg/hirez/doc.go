// Package hirez provides a client for Hi-Rez Studios' game-statistics APIs
// (Smite, Paladins).
//
// The client signs each request with the developer credentials, maintains a
// single short-lived vendor session, and maps the vendor's JSON payloads into
// typed records.
//
// # Authentication
//
// Authenticated requests carry a per-call signature in the URL path:
//
//	{endpoint}/{method}Json/{devId}/{signature}/{sessionToken}/{timestamp}[/{params...}]
//
// where signature is the lowercase hex MD5 digest of
// devId + method + authKey + timestamp, and timestamp is the current UTC time
// as YYYYMMDDHHMMSS. The session token is acquired lazily on the first
// authenticated call and replaced automatically when the vendor reports it
// stale. Sessions expire server-side (about 15 minutes); the client never
// holds more than one.
//
// # Basic Usage
//
//	client := hirez.NewClient(&hirez.ClientConfig{
//	    DevID:           "1004",
//	    AuthKey:         "your-auth-key",
//	    DefaultEndpoint: hirez.EndpointSmitePC,
//	})
//	defer client.Close()
//
//	ok, err := client.Ping(ctx)
//
//	limits, err := client.GetDataUsed(ctx)
//	fmt.Println(limits.RequestsLeft())
//
//	ranks, err := client.GetRanks(ctx, "Weak3n", hirez.WithEndpoint(hirez.EndpointPaladinsPC))
//
// # Error Handling
//
// Failures are surfaced synchronously, never retried, as one of four typed
// errors:
//
//	var apiErr *hirez.APIError
//	if errors.As(err, &apiErr) {
//	    // vendor signalled an application-level exception
//	}
//
//   - *TransportError: non-2xx HTTP status
//   - *DecodeError: body empty, not JSON, or missing a required field
//   - *APIError: vendor payload signalled an exception
//   - *UnsupportedOperationError: operation known to be non-functional for
//     the endpoint; reported without any network call
//
// Empty friends or ranks results are not errors: the vendor answers with an
// empty list both for unknown player names and privacy-restricted accounts,
// and the client preserves that distinction by returning an empty slice.
package hirez
