package extractor

import (
	"bytes"
	"mime"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxTitleLength bounds a title quoted in a notification.
const maxTitleLength = 200

// IsHTML reports whether a Content-Type header names an HTML document.
func IsHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// ExtractTitle returns the whitespace-collapsed <title> of an HTML document,
// or "" for other content types and for documents without a title.
func ExtractTitle(content []byte, contentType string) string {
	if !IsHTML(contentType) || len(content) == 0 {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return ""
	}

	title := strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
	if runes := []rune(title); len(runes) > maxTitleLength {
		title = string(runes[:maxTitleLength]) + "..."
	}
	return title
}
