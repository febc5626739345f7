package justwatch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDoc(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

const offerJSON = `{
	"id": "off1",
	"monetizationType": "FLATRATE",
	"presentationType": "HD",
	"retailPrice": "$9.99",
	"retailPriceValue": 9.99,
	"currency": "USD",
	"lastChangeRetailPriceValue": 8.99,
	"type": "AGGREGATED",
	"package": {
		"id": "pkg1",
		"packageId": 8,
		"clearName": "Netflix",
		"technicalName": "netflix",
		"icon": "/icon/207360008"
	},
	"standardWebURL": "https://netflix.com/title/1",
	"elementCount": 3,
	"availableTo": "2030-01-01",
	"deeplinkRoku": "roku://launch/12",
	"subtitleLanguages": ["en", "de"],
	"videoTechnology": ["_4K"],
	"audioTechnology": ["DOLBY_ATMOS"],
	"audioLanguages": ["en"]
}`

const entryJSON = `{
	"id": "tm1",
	"objectId": 42,
	"objectType": "MOVIE",
	"content": {
		"title": "Title 1",
		"fullPath": "/us/movie/title-1",
		"originalReleaseYear": 1999,
		"originalReleaseDate": "1999-03-24",
		"runtime": 136,
		"shortDescription": "A movie.",
		"genres": [{"shortName": "act"}, null, {"shortName": "scf"}],
		"externalIds": {"imdbId": "tt0133093"},
		"posterUrl": "/poster/1.jpg",
		"backdrops": [{"backdropUrl": "/backdrop/1.jpg"}, null]
	},
	"offers": [` + offerJSON + `, null]
}`

func TestParseSearchResponse(t *testing.T) {
	t.Run("empty edges", func(t *testing.T) {
		entries, err := ParseSearchResponse(decodeDoc(t, `{"data":{"popularTitles":{"edges":[]}}}`))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("absent edges", func(t *testing.T) {
		entries, err := ParseSearchResponse(decodeDoc(t, `{"data":{"popularTitles":{}}}`))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("absent popularTitles", func(t *testing.T) {
		entries, err := ParseSearchResponse(decodeDoc(t, `{"data":{}}`))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing data", func(t *testing.T) {
		_, err := ParseSearchResponse(decodeDoc(t, `{}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "data")
	})

	t.Run("full entry", func(t *testing.T) {
		doc := decodeDoc(t, `{"data":{"popularTitles":{"edges":[{"node":`+entryJSON+`}]}}}`)
		entries, err := ParseSearchResponse(doc)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		entry := entries[0]
		assert.Equal(t, "tm1", entry.EntryID)
		assert.Equal(t, 42, entry.ObjectID)
		assert.Equal(t, "MOVIE", entry.ObjectType)
		assert.True(t, entry.IsMovie())
		assert.Equal(t, "Title 1", entry.Title)
		assert.Equal(t, "https://justwatch.com/us/movie/title-1", entry.URL)
		assert.Equal(t, 1999, entry.ReleaseYear)
		assert.Equal(t, "1999-03-24", entry.ReleaseDate)
		assert.Equal(t, 136, entry.RuntimeMinutes)
		assert.Equal(t, "A movie.", entry.ShortDescription)
		assert.Equal(t, []string{"act", "scf"}, entry.Genres)
		require.NotNil(t, entry.IMDBID)
		assert.Equal(t, "tt0133093", *entry.IMDBID)
		require.NotNil(t, entry.Poster)
		assert.Equal(t, "https://images.justwatch.com/poster/1.jpg", *entry.Poster)
		assert.Equal(t, []string{"https://images.justwatch.com/backdrop/1.jpg"}, entry.Backdrops)

		// Null offers are filtered before parsing.
		require.Len(t, entry.Offers, 1)
		offer := entry.Offers[0]
		assert.Equal(t, "off1", offer.ID)
		assert.Equal(t, "FLATRATE", offer.MonetizationType)
		require.NotNil(t, offer.PriceValue)
		assert.Equal(t, 9.99, *offer.PriceValue)
		assert.Equal(t, "USD", offer.PriceCurrency)
		assert.Equal(t, 3, offer.ElementCount)
		assert.Equal(t, []string{"en", "de"}, offer.SubtitleLanguages)

		pkg := offer.Package
		assert.Equal(t, "pkg1", pkg.ID)
		assert.Equal(t, 8, pkg.PackageID)
		assert.Equal(t, "Netflix", pkg.Name)
		assert.Equal(t, "netflix", pkg.TechnicalName)
		assert.Equal(t, "https://images.justwatch.com/icon/207360008", pkg.Icon)
	})
}

func TestParseTitleResponse(t *testing.T) {
	t.Run("errors key means not found", func(t *testing.T) {
		entry, err := ParseTitleResponse(decodeDoc(t, `{"errors":[{"message":"not found"}]}`))
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("missing data", func(t *testing.T) {
		_, err := ParseTitleResponse(decodeDoc(t, `{}`))
		require.Error(t, err)
	})

	t.Run("missing node", func(t *testing.T) {
		_, err := ParseTitleResponse(decodeDoc(t, `{"data":{}}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "node")
	})

	t.Run("valid node", func(t *testing.T) {
		entry, err := ParseTitleResponse(decodeDoc(t, `{"data":{"node":`+entryJSON+`}}`))
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, "tm1", entry.EntryID)
		assert.Len(t, entry.Offers, 1)
	})
}

func TestParseOffersForCountriesResponse(t *testing.T) {
	t.Run("absent country gets empty slice", func(t *testing.T) {
		doc := decodeDoc(t, `{"data":{"node":{"US":[`+offerJSON+`]}}}`)
		offers, err := ParseOffersForCountriesResponse(doc, []string{"US", "GB"})
		require.NoError(t, err)
		require.Len(t, offers, 2)
		assert.Len(t, offers["US"], 1)
		assert.NotNil(t, offers["GB"])
		assert.Empty(t, offers["GB"])
	})

	t.Run("lowercase request matches uppercase alias", func(t *testing.T) {
		doc := decodeDoc(t, `{"data":{"node":{"US":[`+offerJSON+`]}}}`)
		offers, err := ParseOffersForCountriesResponse(doc, []string{"us"})
		require.NoError(t, err)
		assert.Len(t, offers["us"], 1)
	})

	t.Run("unrequested countries ignored", func(t *testing.T) {
		doc := decodeDoc(t, `{"data":{"node":{"US":[`+offerJSON+`],"DE":[`+offerJSON+`]}}}`)
		offers, err := ParseOffersForCountriesResponse(doc, []string{"US"})
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Contains(t, offers, "US")
	})

	t.Run("missing data", func(t *testing.T) {
		_, err := ParseOffersForCountriesResponse(decodeDoc(t, `{}`), []string{"US"})
		require.Error(t, err)
	})

	t.Run("missing node", func(t *testing.T) {
		_, err := ParseOffersForCountriesResponse(decodeDoc(t, `{"data":{}}`), []string{"US"})
		require.Error(t, err)
	})
}

func TestOfferDefaults(t *testing.T) {
	minimal := `{"data":{"node":{"US":[{
		"id": "off2",
		"monetizationType": "BUY",
		"presentationType": "SD",
		"currency": "USD",
		"type": "AGGREGATED",
		"package": {"id": "pkg2", "packageId": 2, "clearName": "Store", "technicalName": "store", "icon": "/i"},
		"standardWebURL": "https://example.com"
	}]}}}`

	offers, err := ParseOffersForCountriesResponse(decodeDoc(t, minimal), []string{"US"})
	require.NoError(t, err)
	require.Len(t, offers["US"], 1)

	offer := offers["US"][0]
	assert.Equal(t, 0, offer.ElementCount, "absent elementCount defaults to 0")
	assert.Nil(t, offer.PriceString)
	assert.Nil(t, offer.PriceValue)
	assert.Nil(t, offer.LastChangeRetailPriceValue)
	assert.Nil(t, offer.AvailableTo)
	assert.Nil(t, offer.DeeplinkRoku)
	assert.Nil(t, offer.SubtitleLanguages)
	assert.Nil(t, offer.VideoTechnology)
	assert.Nil(t, offer.AudioTechnology)
	assert.Nil(t, offer.AudioLanguages)
}

func TestOfferMissingPackage(t *testing.T) {
	doc := decodeDoc(t, `{"data":{"node":{"US":[{"id":"off3"}]}}}`)
	_, err := ParseOffersForCountriesResponse(doc, []string{"US"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package")
}

func TestEntryOptionalFields(t *testing.T) {
	bare := `{"data":{"node":{
		"id": "tm2",
		"objectId": 7,
		"objectType": "SHOW",
		"content": {
			"title": "Title 2",
			"fullPath": "/us/show/title-2"
		}
	}}}`

	entry, err := ParseTitleResponse(decodeDoc(t, bare))
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.True(t, entry.IsShow())
	assert.Nil(t, entry.IMDBID, "absent externalIds yields nil imdb id")
	assert.Nil(t, entry.Poster, "absent posterUrl yields nil, not the bare host")
	assert.Empty(t, entry.Backdrops)
	assert.Empty(t, entry.Genres)
	assert.Empty(t, entry.Offers)
	assert.Zero(t, entry.ReleaseYear)
	assert.Zero(t, entry.RuntimeMinutes)
}

func TestEntryMissingContent(t *testing.T) {
	_, err := ParseTitleResponse(decodeDoc(t, `{"data":{"node":{"id":"tm3"}}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content")
}
