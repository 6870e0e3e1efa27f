package search

import (
	"net/url"
	"strings"
)

// SearchEndpoint is the path of the search resource relative to the base URL
const SearchEndpoint = "/search"

// GetSearchURL constructs the URL for one page of results
func GetSearchURL(baseURL, query, cursor string) string {
	params := url.Values{}
	params.Set("q", query)
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	return strings.TrimRight(baseURL, "/") + SearchEndpoint + "?" + params.Encode()
}
