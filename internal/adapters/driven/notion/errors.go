package notion

import (
	"errors"
	"net/http"

	"github.com/jomei/notionapi"
)

// Notion API error codes.
const (
	codeRateLimited  = "rate_limited"
	codeUnauthorized = "unauthorized"
)

// IsRateLimited checks if the error is a Notion rate limit response.
func IsRateLimited(err error) bool {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests || string(apiErr.Code) == codeRateLimited
	}
	return false
}

// IsUnauthorized checks if the error indicates an invalid or missing token.
func IsUnauthorized(err error) bool {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || string(apiErr.Code) == codeUnauthorized
	}
	return false
}

// IsNotFound checks if the parent page does not exist or is not shared
// with the integration.
func IsNotFound(err error) bool {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}
	return false
}
