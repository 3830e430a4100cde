package site

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/open-cli-collective/vwww/pkg/macro"
)

// Template file names looked up at the top level of the input directory.
const (
	HeaderFile = "header.html"
	FooterFile = "footer.html"
)

// Templates is the expanded header/footer pair wrapped around every page.
type Templates struct {
	Header string
	Footer string
}

// LoadTemplates reads header.html and footer.html from dir and expands the
// macros in each. Both are expanded once, so a date stamp in the header is
// the same on every page of a run.
func LoadTemplates(x *macro.Expander, dir string) (Templates, error) {
	header, err := loadTemplate(x, filepath.Join(dir, HeaderFile))
	if err != nil {
		return Templates{}, err
	}
	footer, err := loadTemplate(x, filepath.Join(dir, FooterFile))
	if err != nil {
		return Templates{}, err
	}
	return Templates{Header: header, Footer: footer}, nil
}

func loadTemplate(x *macro.Expander, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	expanded, err := x.Expand(string(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return expanded, nil
}
