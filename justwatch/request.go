package justwatch

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// GraphQL operation names recognized by the JustWatch API.
const (
	operationSearchTitles = "GetSearchTitles"
	operationTitleNode    = "GetTitleNode"
	operationTitleOffers  = "GetTitleOffers"
)

// PrepareSearchRequest builds a GetSearchTitles request body.
// The country code must be exactly 2 characters; it is upper-cased before
// being placed into the variables map.
func PrepareSearchRequest(title, country, language string, count int, bestOnly bool) (GraphQLRequest, error) {
	if err := validateCountryCode(country); err != nil {
		return GraphQLRequest{}, err
	}
	return GraphQLRequest{
		OperationName: operationSearchTitles,
		Variables: map[string]any{
			"first":              count,
			"searchTitlesFilter": map[string]any{"searchQuery": title},
			"language":           language,
			"country":            strings.ToUpper(country),
			"formatPoster":       formatPoster,
			"formatOfferIcon":    formatOfferIcon,
			"profile":            posterProfile,
			"backdropProfile":    backdropProfile,
			"filter":             map[string]any{"bestOnly": bestOnly},
		},
		Query: graphQLSearchQuery + graphQLDetailsFragment + graphQLOfferFragment,
	}, nil
}

// PrepareTitleRequest builds a GetTitleNode request body for a single node ID.
func PrepareTitleRequest(nodeID, country, language string, bestOnly bool) (GraphQLRequest, error) {
	if err := validateCountryCode(country); err != nil {
		return GraphQLRequest{}, err
	}
	return GraphQLRequest{
		OperationName: operationTitleNode,
		Variables: map[string]any{
			"nodeId":          nodeID,
			"language":        language,
			"country":         strings.ToUpper(country),
			"formatPoster":    formatPoster,
			"formatOfferIcon": formatOfferIcon,
			"profile":         posterProfile,
			"backdropProfile": backdropProfile,
			"filter":          map[string]any{"bestOnly": bestOnly},
		},
		Query: graphQLTitleNodeQuery + graphQLDetailsFragment + graphQLOfferFragment,
	}, nil
}

// PrepareOffersForCountriesRequest builds a GetTitleOffers request body that
// fetches offers for one node across multiple countries in a single query.
// Each country becomes one aliased offers block; codes are upper-cased,
// deduplicated and emitted in lexicographic order so the generated query text
// is stable across calls. Returns ErrNoCountries when countries is empty.
func PrepareOffersForCountriesRequest(nodeID string, countries []string, language string, bestOnly bool) (GraphQLRequest, error) {
	if len(countries) == 0 {
		return GraphQLRequest{}, ErrNoCountries
	}
	codes, err := normalizeCountryCodes(countries)
	if err != nil {
		return GraphQLRequest{}, err
	}
	return GraphQLRequest{
		OperationName: operationTitleOffers,
		Variables: map[string]any{
			"nodeId":          nodeID,
			"language":        language,
			"formatPoster":    formatPoster,
			"formatOfferIcon": formatOfferIcon,
			"profile":         posterProfile,
			"backdropProfile": backdropProfile,
			"filter":          map[string]any{"bestOnly": bestOnly},
		},
		Query: buildOffersByCountryQuery(codes),
	}, nil
}

// validateCountryCode rejects codes whose length is not exactly 2 characters.
func validateCountryCode(code string) error {
	if utf8.RuneCountInString(code) != 2 {
		return &CountryCodeError{Code: code}
	}
	return nil
}

// normalizeCountryCodes validates, upper-cases, deduplicates and sorts the
// given country codes.
func normalizeCountryCodes(countries []string) ([]string, error) {
	seen := make(map[string]struct{}, len(countries))
	codes := make([]string, 0, len(countries))
	for _, country := range countries {
		if err := validateCountryCode(country); err != nil {
			return nil, err
		}
		code := strings.ToUpper(country)
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// buildOffersByCountryQuery assembles the GetTitleOffers document from one
// aliased block per country plus the shared offer fragment. The fragment is
// appended exactly once regardless of how many countries are requested.
func buildOffersByCountryQuery(codes []string) string {
	entries := make([]string, len(codes))
	for i, code := range codes {
		entries[i] = fmt.Sprintf(graphQLCountryOffersEntry, code)
	}
	body := fmt.Sprintf(graphQLOffersByCountryQuery, strings.Join(entries, "\n"))
	return body + graphQLOfferFragment
}
