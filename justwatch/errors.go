package justwatch

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoCountries indicates an offers request was prepared without any
// country codes.
var ErrNoCountries = errors.New("cannot prepare offers request without specified countries")

// CountryCodeError indicates a country code of invalid length.
type CountryCodeError struct {
	Code string
}

// Error implements the error interface. The message text is relied upon by
// existing callers and must not change.
func (e *CountryCodeError) Error() string {
	return fmt.Sprintf("Invalid country code: %s, code must be 2 characters long", e.Code)
}

// APIError represents a non-2xx response from the JustWatch API.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("justwatch API error: status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsThrottled checks if the error indicates rate limiting by the API
func (e *APIError) IsThrottled() bool {
	return e.StatusCode == http.StatusTooManyRequests
}
