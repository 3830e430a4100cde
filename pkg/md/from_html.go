package md

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var (
	// bodyPattern captures the contents of <body>, when the page has one.
	bodyPattern = regexp.MustCompile(`(?is)<body[^>]*>(.*)</body>`)
	// headPattern matches the <head> element, which never contributes content.
	headPattern = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
)

// FromHTML converts an HTML page or fragment to Markdown. For full documents
// only the <body> is converted; the surrounding chrome is expected to come
// from header.html and footer.html.
func FromHTML(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	html = ExtractBody(html)

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(markdown) + "\n", nil
}

// ExtractBody returns the inner HTML of the <body> element, or the input
// without its <head> when there is no body element.
func ExtractBody(html string) string {
	if m := bodyPattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return headPattern.ReplaceAllString(html, "")
}
