package crawl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSameDomain(t *testing.T) {
	tests := []struct {
		url    string
		domain string
		want   bool
	}{
		{"https://site.test/page", "site.test", true},
		{"http://site.test", "site.test", true},
		{"https://SITE.test/page", "site.test", true},
		{"https://other.test/page", "site.test", false},
		{"https://sub.site.test/page", "site.test", false},
		{"://bad", "site.test", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSameDomain(tt.url, tt.domain), "url %s", tt.url)
	}
}

func TestIsStaticAsset(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://site.test/logo.png", true},
		{"https://site.test/app.JS", true},
		{"https://site.test/doc.pdf", true},
		{"https://site.test/font.woff2", true},
		{"https://site.test/feed.xml", true},
		{"https://site.test/api/data.json", true},
		{"https://site.test/page", false},
		{"https://site.test/page.html", false},
		{"https://site.test/", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsStaticAsset(tt.url), "url %s", tt.url)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://site.test/page/", "https://site.test/page"},
		{"https://site.test/page#frag", "https://site.test/page"},
		{"https://Site.Test/Page", "https://site.test/Page"},
		{"https://site.test/", "https://site.test/"},
		{"https://site.test/page?q=1", "https://site.test/page?q=1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeURL(tt.in), "url %s", tt.in)
	}
}
