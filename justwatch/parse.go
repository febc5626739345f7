package justwatch

import (
	"fmt"
	"strings"
)

// jsonObject wraps a decoded generic JSON object with typed field accessors.
// The accessors centralize the defaulting policy: required objects produce an
// error when missing, optional scalars default to their zero value or nil,
// and list accessors return nil for absent fields.
type jsonObject map[string]any

// toObject asserts that v is a JSON object, naming path in the error when it
// is not.
func toObject(v any, path string) (jsonObject, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected shape at %s", path)
	}
	return jsonObject(obj), nil
}

// object returns the nested object under key, failing when it is absent or
// not an object.
func (o jsonObject) object(key string) (jsonObject, error) {
	v, ok := o[key]
	if !ok {
		return nil, fmt.Errorf("missing required field %q", key)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("field %q is not an object", key)
	}
	return jsonObject(obj), nil
}

// optObject returns the nested object under key, or nil when absent or null.
func (o jsonObject) optObject(key string) jsonObject {
	obj, ok := o[key].(map[string]any)
	if !ok {
		return nil
	}
	return jsonObject(obj)
}

// str returns the string under key, or "" when absent or null.
func (o jsonObject) str(key string) string {
	s, _ := o[key].(string)
	return s
}

// optStr returns a pointer to the string under key, or nil when absent or null.
func (o jsonObject) optStr(key string) *string {
	s, ok := o[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// integer returns the number under key truncated to int, or 0 when absent.
func (o jsonObject) integer(key string) int {
	f, _ := o[key].(float64)
	return int(f)
}

// optFloat returns a pointer to the number under key, or nil when absent or null.
func (o jsonObject) optFloat(key string) *float64 {
	f, ok := o[key].(float64)
	if !ok {
		return nil
	}
	return &f
}

// list returns the array under key, or nil when absent or null.
func (o jsonObject) list(key string) []any {
	l, _ := o[key].([]any)
	return l
}

// strList returns the array of strings under key, passed through as returned
// by the API: nil when the field is absent or null, empty when the API sent
// an empty array.
func (o jsonObject) strList(key string) []string {
	raw, ok := o[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, _ := v.(string)
		out = append(out, s)
	}
	return out
}

// ParseSearchResponse parses a GetSearchTitles response document into a list
// of media entries. An empty or absent edges array yields an empty slice,
// never an error. A document without a data key is malformed and returns an
// error.
func ParseSearchResponse(doc map[string]any) ([]MediaEntry, error) {
	data, err := jsonObject(doc).object("data")
	if err != nil {
		return nil, fmt.Errorf("search response: %w", err)
	}
	titles := data.optObject("popularTitles")
	if titles == nil {
		return []MediaEntry{}, nil
	}
	edges := titles.list("edges")
	entries := make([]MediaEntry, 0, len(edges))
	for i, edge := range edges {
		edgeObj, err := toObject(edge, fmt.Sprintf("data.popularTitles.edges[%d]", i))
		if err != nil {
			return nil, fmt.Errorf("search response: %w", err)
		}
		node, err := edgeObj.object("node")
		if err != nil {
			return nil, fmt.Errorf("search response: edge %d: %w", i, err)
		}
		entry, err := parseEntry(node)
		if err != nil {
			return nil, fmt.Errorf("search response: edge %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ParseTitleResponse parses a GetTitleNode response document. A document
// carrying a top-level errors key is the API's signal for an unknown node ID
// and yields (nil, nil) so callers can distinguish "no such title" from a
// malformed response.
func ParseTitleResponse(doc map[string]any) (*MediaEntry, error) {
	if _, ok := doc["errors"]; ok {
		return nil, nil
	}
	data, err := jsonObject(doc).object("data")
	if err != nil {
		return nil, fmt.Errorf("title response: %w", err)
	}
	node, err := data.object("node")
	if err != nil {
		return nil, fmt.Errorf("title response: %w", err)
	}
	entry, err := parseEntry(node)
	if err != nil {
		return nil, fmt.Errorf("title response: %w", err)
	}
	return &entry, nil
}

// ParseOffersForCountriesResponse parses a GetTitleOffers response document.
// Every requested country appears in the result; countries without offers in
// the response map to an empty slice. Countries present in the response but
// not requested are ignored.
func ParseOffersForCountriesResponse(doc map[string]any, countries []string) (map[string][]Offer, error) {
	data, err := jsonObject(doc).object("data")
	if err != nil {
		return nil, fmt.Errorf("offers response: %w", err)
	}
	node, err := data.object("node")
	if err != nil {
		return nil, fmt.Errorf("offers response: %w", err)
	}
	result := make(map[string][]Offer, len(countries))
	for _, country := range countries {
		raw := node.list(strings.ToUpper(country))
		offers := make([]Offer, 0, len(raw))
		for i, v := range raw {
			if v == nil {
				continue
			}
			obj, err := toObject(v, fmt.Sprintf("offer %d for %s", i, country))
			if err != nil {
				return nil, fmt.Errorf("offers response: %w", err)
			}
			offer, err := parseOffer(obj)
			if err != nil {
				return nil, fmt.Errorf("offers response: country %s: %w", country, err)
			}
			offers = append(offers, offer)
		}
		result[country] = offers
	}
	return result, nil
}

// parseEntry normalizes a single title node. The content object is required;
// everything inside it tolerates absence per the defaulting policy.
func parseEntry(node jsonObject) (MediaEntry, error) {
	content, err := node.object("content")
	if err != nil {
		return MediaEntry{}, err
	}

	entry := MediaEntry{
		EntryID:          node.str("id"),
		ObjectID:         node.integer("objectId"),
		ObjectType:       node.str("objectType"),
		Title:            content.str("title"),
		URL:              detailsBaseURL + content.str("fullPath"),
		ReleaseYear:      content.integer("originalReleaseYear"),
		ReleaseDate:      content.str("originalReleaseDate"),
		RuntimeMinutes:   content.integer("runtime"),
		ShortDescription: content.str("shortDescription"),
	}

	for _, genre := range content.list("genres") {
		obj, ok := genre.(map[string]any)
		if !ok {
			continue
		}
		entry.Genres = append(entry.Genres, jsonObject(obj).str("shortName"))
	}

	if externalIDs := content.optObject("externalIds"); externalIDs != nil {
		entry.IMDBID = externalIDs.optStr("imdbId")
	}

	if poster := content.optStr("posterUrl"); poster != nil && *poster != "" {
		u := imagesBaseURL + *poster
		entry.Poster = &u
	}

	for _, backdrop := range content.list("backdrops") {
		obj, ok := backdrop.(map[string]any)
		if !ok {
			continue
		}
		entry.Backdrops = append(entry.Backdrops, imagesBaseURL+jsonObject(obj).str("backdropUrl"))
	}

	for _, raw := range node.list("offers") {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		offer, err := parseOffer(jsonObject(obj))
		if err != nil {
			return MediaEntry{}, err
		}
		entry.Offers = append(entry.Offers, offer)
	}

	return entry, nil
}

// parseOffer normalizes a single offer. The package object is required; a
// missing elementCount defaults to 0 while the nullable price and
// availability fields stay nil when absent.
func parseOffer(obj jsonObject) (Offer, error) {
	pkg, err := obj.object("package")
	if err != nil {
		return Offer{}, fmt.Errorf("offer %q: %w", obj.str("id"), err)
	}
	return Offer{
		ID:                         obj.str("id"),
		MonetizationType:           obj.str("monetizationType"),
		PresentationType:           obj.str("presentationType"),
		PriceString:                obj.optStr("retailPrice"),
		PriceValue:                 obj.optFloat("retailPriceValue"),
		PriceCurrency:              obj.str("currency"),
		LastChangeRetailPriceValue: obj.optFloat("lastChangeRetailPriceValue"),
		Type:                       obj.str("type"),
		Package:                    parsePackage(pkg),
		URL:                        obj.str("standardWebURL"),
		ElementCount:               obj.integer("elementCount"),
		AvailableTo:                obj.optStr("availableTo"),
		DeeplinkRoku:               obj.optStr("deeplinkRoku"),
		SubtitleLanguages:          obj.strList("subtitleLanguages"),
		VideoTechnology:            obj.strList("videoTechnology"),
		AudioTechnology:            obj.strList("audioTechnology"),
		AudioLanguages:             obj.strList("audioLanguages"),
	}, nil
}

func parsePackage(obj jsonObject) OfferPackage {
	return OfferPackage{
		ID:            obj.str("id"),
		PackageID:     obj.integer("packageId"),
		Name:          obj.str("clearName"),
		TechnicalName: obj.str("technicalName"),
		Icon:          imagesBaseURL + obj.str("icon"),
	}
}
