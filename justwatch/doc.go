// Package justwatch provides a client for the JustWatch GraphQL API.
//
// JustWatch is a streaming availability service; this package implements a
// clean, idiomatic Go client for searching titles, fetching title details and
// looking up streaming offers across countries.
//
// # Architecture
//
// The package separates the pure wire-contract layer from the transport:
//
//   - Request builders: PrepareSearchRequest, PrepareTitleRequest and
//     PrepareOffersForCountriesRequest compose the GraphQL request bodies
//   - Parsers: ParseSearchResponse, ParseTitleResponse and
//     ParseOffersForCountriesResponse normalize response documents into
//     MediaEntry, Offer and OfferPackage records
//   - Client: an HTTP transport that glues the two together
//
// The builders and parsers are pure functions with no shared state; they can
// be used directly with any transport.
//
// # Usage
//
// Create a client and search for a title:
//
//	logger := zerolog.New(os.Stdout)
//	client := justwatch.NewClient(logger,
//		justwatch.WithTimeout(30*time.Second),
//	)
//
//	ctx := context.Background()
//	entries, err := client.Search(ctx, "The Matrix", "US", "en", 5, true)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Error Handling
//
//   - Country codes must be exactly 2 characters; violations yield a
//     *CountryCodeError before any request is built
//   - ErrNoCountries: an offers request was prepared without countries
//   - *APIError: non-2xx HTTP responses, with classification helpers
//   - GetTitle returns (nil, nil) for unknown node IDs; the API reports
//     those through the GraphQL errors key rather than an HTTP status
package justwatch
