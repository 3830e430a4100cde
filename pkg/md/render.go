// Package md converts between Markdown and (X)HTML for site pages.
package md

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultExtensions are enabled when Options.Extensions is empty.
var DefaultExtensions = []string{"table"}

// extensionRegistry maps configuration names to goldmark extensions.
var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// ExtensionNames returns the supported extension names, sorted.
func ExtensionNames() []string {
	names := make([]string, 0, len(extensionRegistry))
	for name := range extensionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsExtension reports whether name is a supported extension (case-insensitive).
func IsExtension(name string) bool {
	_, ok := lookupExtension(name)
	return ok
}

func lookupExtension(name string) (goldmark.Extender, bool) {
	ext, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ext, ok
}

// Options configures a Renderer.
type Options struct {
	Extensions []string
	// EscapeHTML drops raw HTML embedded in the Markdown source instead of
	// passing it through.
	EscapeHTML bool
	HardWraps  bool
	HeadingIDs bool
}

// Renderer renders Markdown to XHTML.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer builds a renderer from opts. Unknown extension names are an error.
func NewRenderer(opts Options) (*Renderer, error) {
	names := opts.Extensions
	if len(names) == 0 {
		names = DefaultExtensions
	}

	exts := make([]goldmark.Extender, 0, len(names))
	for _, name := range names {
		ext, ok := lookupExtension(name)
		if !ok {
			return nil, fmt.Errorf("unknown markdown extension %q (supported: %s)", name, strings.Join(ExtensionNames(), ", "))
		}
		exts = append(exts, ext)
	}

	// Output is always XHTML; raw HTML passes through unless escaped.
	rendererOptions := []renderer.Option{html.WithXHTML()}
	if !opts.EscapeHTML {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	var parserOptions []parser.Option
	if opts.HeadingIDs {
		parserOptions = append(parserOptions, parser.WithAutoHeadingID())
	}

	engine := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithRendererOptions(rendererOptions...),
	)
	return &Renderer{engine: engine}, nil
}

// Render converts Markdown source to XHTML.
func (r *Renderer) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(source, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
