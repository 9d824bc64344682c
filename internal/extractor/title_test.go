package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHTML(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"TEXT/HTML", true},
		{"application/xhtml+xml", true},
		{"application/json", false},
		{"text/plain", false},
		{"", false},
		{";;;", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHTML(tt.contentType))
		})
	}
}

func TestExtractTitle(t *testing.T) {
	page := []byte("<html><head><title>\n  Release   notes\n</title></head><body><title>ignored</title></body></html>")
	assert.Equal(t, "Release notes", ExtractTitle(page, "text/html; charset=utf-8"))
}

func TestExtractTitle_NonHTML(t *testing.T) {
	assert.Empty(t, ExtractTitle([]byte("<title>x</title>"), "text/plain"))
}

func TestExtractTitle_NoTitle(t *testing.T) {
	assert.Empty(t, ExtractTitle([]byte("<p>hello</p>"), "text/html"))
	assert.Empty(t, ExtractTitle(nil, "text/html"))
}

func TestExtractTitle_Truncates(t *testing.T) {
	page := []byte("<title>" + strings.Repeat("a", 300) + "</title>")
	title := ExtractTitle(page, "text/html")
	assert.Equal(t, strings.Repeat("a", maxTitleLength)+"...", title)
}
