package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/open-cli-collective/vwww/internal/logging"
)

// PageExt and OutputExt are the source and output file extensions.
const (
	PageExt   = ".md"
	OutputExt = ".html"
)

// OutputName maps a page file name to its output file name.
func OutputName(page string) string {
	return page[:len(page)-len(PageExt)] + OutputExt
}

// ProcessPage expands and renders one page and writes
// header + body + footer to the output directory. Nothing is written if
// expansion or rendering fails.
func (b *Builder) ProcessPage(name string, tmpl Templates) error {
	start := time.Now()
	inPath := filepath.Join(b.inputDir, name)
	outPath := filepath.Join(b.outputDir, OutputName(name))

	source, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read page: %w", err)
	}

	expanded, err := b.expander.Expand(string(source))
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	body, err := b.renderer.Render([]byte(expanded))
	if err != nil {
		return fmt.Errorf("render %s: %w", inPath, err)
	}

	var sb strings.Builder
	sb.Grow(len(tmpl.Header) + len(body) + len(tmpl.Footer))
	sb.WriteString(tmpl.Header)
	sb.Write(body)
	sb.WriteString(tmpl.Footer)

	if err := os.WriteFile(outPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}

	b.logger.Debug("page written",
		logging.Page(name),
		logging.Path(outPath),
		logging.DurationMS(float64(time.Since(start).Microseconds())/1000),
		slog.Int("bytes", sb.Len()))
	return nil
}
