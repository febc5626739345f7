package justwatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(zerolog.Nop(), WithEndpoint(server.URL))
}

func TestClientOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		client := NewClient(zerolog.Nop())
		assert.Equal(t, defaultEndpoint, client.endpoint)
		assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
	})

	t.Run("with timeout", func(t *testing.T) {
		client := NewClient(zerolog.Nop(), WithTimeout(5*time.Second))
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client := NewClient(zerolog.Nop(), WithHTTPClient(custom))
		assert.Equal(t, custom, client.httpClient)
	})

	t.Run("with user agent", func(t *testing.T) {
		client := NewClient(zerolog.Nop(), WithUserAgent("test-agent"))
		assert.Equal(t, "test-agent", client.userAgent)
	})
}

func TestClientSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var request GraphQLRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "GetSearchTitles", request.OperationName)
		assert.Equal(t, "US", request.Variables["country"])

		w.Write([]byte(`{"data":{"popularTitles":{"edges":[{"node":` + entryJSON + `}]}}}`))
	})

	entries, err := client.Search(context.Background(), "Title 1", "us", "en", 5, true)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Title 1", entries[0].Title)
}

func TestClientSearchInvalidCountry(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.Search(context.Background(), "Title", "usa", "en", 5, true)
	require.Error(t, err)
	var codeErr *CountryCodeError
	assert.ErrorAs(t, err, &codeErr)
	assert.False(t, called, "validation errors must not reach the network")
}

func TestClientGetTitle(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"node":` + entryJSON + `}}`))
		})

		entry, err := client.GetTitle(context.Background(), "tm1", "US", "en", true)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, "tm1", entry.EntryID)
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"errors":[{"message":"node not found"}]}`))
		})

		entry, err := client.GetTitle(context.Background(), "missing", "US", "en", true)
		require.NoError(t, err)
		assert.Nil(t, entry)
	})
}

func TestClientGetOffersForCountries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var request GraphQLRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "GetTitleOffers", request.OperationName)
		assert.Contains(t, request.Query, "GB: offers(country: GB")
		assert.Contains(t, request.Query, "US: offers(country: US")

		w.Write([]byte(`{"data":{"node":{"US":[` + offerJSON + `]}}}`))
	})

	offers, err := client.GetOffersForCountries(context.Background(), "tm1", []string{"US", "GB"}, "en", true)
	require.NoError(t, err)
	assert.Len(t, offers["US"], 1)
	assert.Empty(t, offers["GB"])
}

func TestClientAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("slow down"))
	})

	_, err := client.Search(context.Background(), "Title", "US", "en", 5, true)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.True(t, apiErr.IsThrottled())
	assert.False(t, apiErr.IsNotFound())
}

func TestClientGetTitles(t *testing.T) {
	var requests atomic.Int64
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		var request GraphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if request.Variables["nodeId"] == "missing" {
			w.Write([]byte(`{"errors":[{"message":"node not found"}]}`))
			return
		}
		w.Write([]byte(`{"data":{"node":` + entryJSON + `}}`))
	})

	entries, err := client.GetTitles(context.Background(), []string{"tm1", "missing"}, "US", "en", true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), requests.Load())
	require.Len(t, entries, 2)
	require.NotNil(t, entries["tm1"])
	assert.Equal(t, "tm1", entries["tm1"].EntryID)
	assert.Nil(t, entries["missing"])
}

func TestClientGetTitlesInvalidCountry(t *testing.T) {
	client := NewClient(zerolog.Nop())
	_, err := client.GetTitles(context.Background(), []string{"tm1"}, "usa", "en", true)
	require.Error(t, err)
	var codeErr *CountryCodeError
	assert.ErrorAs(t, err, &codeErr)
}
