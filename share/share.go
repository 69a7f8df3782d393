// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package share

import (
	"net/url"
	"strings"
)

const shareText = "Check out this poll!"

type Link struct {
	Platform string
	URL      string
}

// PollURL is the public address of a poll under baseURL
func PollURL(baseURL, pollID string) string {
	return strings.TrimRight(baseURL, "/") + "/poll/" + url.PathEscape(pollID)
}

// Links builds outbound share links for a poll.
// Instagram has no share endpoint, so it only links to the site.
func Links(baseURL, pollID string) []Link {
	pollURL := PollURL(baseURL, pollID)

	twitter := url.Values{}
	twitter.Set("text", shareText)
	twitter.Set("url", pollURL)

	whatsapp := url.Values{}
	whatsapp.Set("text", shareText+" "+pollURL)

	facebook := url.Values{}
	facebook.Set("u", pollURL)

	return []Link{
		{Platform: "Twitter", URL: "https://twitter.com/intent/tweet?" + twitter.Encode()},
		{Platform: "WhatsApp", URL: "https://api.whatsapp.com/send?" + whatsapp.Encode()},
		{Platform: "Facebook", URL: "https://www.facebook.com/sharer/sharer.php?" + facebook.Encode()},
		{Platform: "Instagram", URL: "https://www.instagram.com"},
	}
}
