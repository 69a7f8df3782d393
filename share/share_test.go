// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package share

import (
	"net/url"
	"strings"
	"testing"
)

func TestPollURL(t *testing.T) {
	tests := []struct {
		base string
		id   string
		want string
	}{
		{"https://yourdomain.com", "abc123", "https://yourdomain.com/poll/abc123"},
		{"https://yourdomain.com/", "abc123", "https://yourdomain.com/poll/abc123"},
		{"http://localhost:3318", "a b", "http://localhost:3318/poll/a%20b"},
	}

	for _, tt := range tests {
		if got := PollURL(tt.base, tt.id); got != tt.want {
			t.Errorf("PollURL(%q, %q) = %q, want %q", tt.base, tt.id, got, tt.want)
		}
	}
}

func TestLinks(t *testing.T) {
	links := Links("https://yourdomain.com", "65f0c0ffee")

	want := []string{"Twitter", "WhatsApp", "Facebook", "Instagram"}
	if len(links) != len(want) {
		t.Fatalf("got %d links, want %d", len(links), len(want))
	}

	for i, link := range links {
		if link.Platform != want[i] {
			t.Errorf("link %d platform = %s, want %s", i, link.Platform, want[i])
		}
		u, err := url.Parse(link.URL)
		if err != nil {
			t.Errorf("%s link is not a valid URL: %v", link.Platform, err)
			continue
		}
		if u.Scheme != "https" {
			t.Errorf("%s link should be https, got %s", link.Platform, u.Scheme)
		}
		if link.Platform != "Instagram" {
			decoded, _ := url.QueryUnescape(link.URL)
			if !strings.Contains(decoded, "https://yourdomain.com/poll/65f0c0ffee") {
				t.Errorf("%s link does not embed the poll URL: %s", link.Platform, link.URL)
			}
		}
	}
}
