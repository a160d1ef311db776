// ABOUTME: This file normalizes feed URLs into a canonical identity form
// ABOUTME: Remote feed records and article records must agree on one URL key

package utils

import (
	"net/url"
	"strings"
)

// trackingParams contains query parameters to remove during normalization.
// They vary per subscriber and would split one feed into several identities.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"utm_id":       true,
	"fbclid":       true,
	"gclid":        true,
	"mc_eid":       true,
	"msclkid":      true,
}

// NormalizeFeedURL reduces a feed URL to its canonical form so that the URL
// stored on a feed record and the URL stamped on that feed's article records
// compare equal even when they were written by different clients:
// lowercased scheme and host, no fragment, no tracking parameters, no
// trailing slash outside the root path. Unparseable input is returned
// unchanged so a malformed URL still matches itself.
func NormalizeFeedURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""

	query := parsed.Query()
	for param := range trackingParams {
		query.Del(param)
	}
	parsed.RawQuery = query.Encode()

	if parsed.Path != "/" && strings.HasSuffix(parsed.Path, "/") {
		parsed.Path = strings.TrimRight(parsed.Path, "/")
	}

	return parsed.String()
}
