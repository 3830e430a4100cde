// Package site builds an output directory of XHTML pages from a directory of
// Markdown sources and a header/footer template.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/open-cli-collective/vwww/internal/logging"
	"github.com/open-cli-collective/vwww/pkg/macro"
)

// ResourcesDir is the subdirectory copied verbatim into the output.
const ResourcesDir = "res"

var (
	ErrInputMissing = errors.New("non-existent directory")
	ErrNoMarkdown   = errors.New("no markdown to process")
	ErrOutputExists = errors.New("output dir already exists")
)

// Renderer converts expanded Markdown to the page body.
type Renderer interface {
	Render(source []byte) ([]byte, error)
}

// Reporter receives progress notices.
type Reporter interface {
	Progress(format string, args ...interface{})
}

type nopReporter struct{}

func (nopReporter) Progress(string, ...interface{}) {}

// Options configures a Builder. Renderer is required.
type Options struct {
	InputDir  string
	OutputDir string
	Renderer  Renderer
	// Expander defaults to one using the system clock and filesystem.
	Expander *macro.Expander
	Reporter Reporter
	Logger   *slog.Logger
}

// Builder runs a single build from an input directory into a new output directory.
type Builder struct {
	inputDir  string
	outputDir string
	renderer  Renderer
	expander  *macro.Expander
	reporter  Reporter
	logger    *slog.Logger
}

// Result summarizes a finished build.
type Result struct {
	Pages     []string
	Resources bool
}

// NewBuilder creates a builder from opts.
func NewBuilder(opts Options) *Builder {
	b := &Builder{
		inputDir:  opts.InputDir,
		outputDir: opts.OutputDir,
		renderer:  opts.Renderer,
		expander:  opts.Expander,
		reporter:  opts.Reporter,
		logger:    opts.Logger,
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.expander == nil {
		b.expander = macro.NewExpander(macro.DefaultEnv(), b.logger)
	}
	if b.reporter == nil {
		b.reporter = nopReporter{}
	}
	return b
}

// Run builds the site. The output directory must not exist; it is created
// only after the inputs and templates have been checked. A failure leaves
// whatever was already written in place.
func (b *Builder) Run() (*Result, error) {
	pages, err := ListPages(b.inputDir)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdown, b.inputDir)
	}
	if _, err := os.Lstat(b.outputDir); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrOutputExists, b.outputDir)
	}

	tmpl, err := LoadTemplates(b.expander, b.inputDir)
	if err != nil {
		return nil, err
	}

	if err := os.Mkdir(b.outputDir, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrOutputExists, b.outputDir)
		}
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, page := range pages {
		b.reporter.Progress("processing %s", page)
		if err := b.ProcessPage(page, tmpl); err != nil {
			b.logger.Debug("build stopped", logging.Page(page), logging.Error(err))
			return nil, err
		}
	}

	copied, err := b.CopyResources()
	if err != nil {
		return nil, err
	}

	return &Result{Pages: pages, Resources: copied}, nil
}

// ListPages returns the names of the top-level *.md files in dir, in
// directory listing order. Subdirectories are never descended into.
func ListPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputMissing, dir)
		}
		return nil, fmt.Errorf("failed to list input directory: %w", err)
	}

	var pages []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), PageExt) {
			continue
		}
		pages = append(pages, entry.Name())
	}
	return pages, nil
}

// CopyResources copies <in>/res to <out>/res when it exists and reports
// whether anything was copied.
func (b *Builder) CopyResources() (bool, error) {
	b.reporter.Progress("copying resources...")

	src := filepath.Join(b.inputDir, ResourcesDir)
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.logger.Debug("no resources to copy", logging.Path(src))
			return false, nil
		}
		return false, fmt.Errorf("failed to read resources: %w", err)
	}

	if err := CopyTree(src, filepath.Join(b.outputDir, ResourcesDir)); err != nil {
		return false, err
	}
	return true, nil
}
