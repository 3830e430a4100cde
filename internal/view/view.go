// Package view provides console output for vwww commands.
package view

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes progress and status lines to the console.
type Printer struct {
	writer io.Writer
	quiet  bool
}

// NewPrinter creates a printer writing to stdout. Quiet suppresses progress
// lines but not results.
func NewPrinter(noColor, quiet bool) *Printer {
	if noColor {
		color.NoColor = true
	}
	return &Printer{
		writer: os.Stdout,
		quiet:  quiet,
	}
}

// SetWriter sets the output writer.
func (p *Printer) SetWriter(w io.Writer) {
	p.writer = w
}

// Progress prints a progress notice such as "processing index.md".
func (p *Printer) Progress(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.writer, format+"\n", args...)
}

// Text prints plain text.
func (p *Printer) Text(text string) {
	fmt.Fprintln(p.writer, text)
}

// KeyValue prints a bold key followed by its value.
func (p *Printer) KeyValue(key, value string) {
	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(p.writer, "%-16s", key+":")
	fmt.Fprintln(p.writer, value)
}

// Dim prints a faint line, used for hints and sources.
func (p *Printer) Dim(format string, args ...interface{}) {
	dim := color.New(color.Faint)
	_, _ = dim.Fprintf(p.writer, format+"\n", args...)
}

// Success prints a success message.
func (p *Printer) Success(msg string) {
	green := color.New(color.FgGreen)
	_, _ = green.Fprintln(p.writer, "✓ "+msg)
}

// Warning prints a warning message.
func (p *Printer) Warning(msg string) {
	yellow := color.New(color.FgYellow)
	_, _ = yellow.Fprintln(p.writer, "! "+msg)
}
