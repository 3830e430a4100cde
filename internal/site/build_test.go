package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/vwww/pkg/macro"
	"github.com/open-cli-collective/vwww/pkg/md"
)

const stamp = "Tue Mar  5 14:07:09 2013"

func fixedExpander() *macro.Expander {
	env := macro.DefaultEnv()
	env.Now = func() time.Time { return time.Date(2013, time.March, 5, 14, 7, 9, 0, time.UTC) }
	return macro.NewExpander(env, nil)
}

// writeSite creates an input directory holding files (slash-separated
// relative paths) and returns its path.
func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "in")
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func basicSite(t *testing.T) string {
	return writeSite(t, map[string]string{
		"header.html": "<html>%%date%%",
		"footer.html": "</html>",
		"page.md":     "# Hi",
	})
}

type recordingReporter struct {
	lines []string
}

func (r *recordingReporter) Progress(format string, args ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func newTestBuilder(t *testing.T, in, out string, reporter Reporter) *Builder {
	t.Helper()
	renderer, err := md.NewRenderer(md.Options{})
	require.NoError(t, err)
	return NewBuilder(Options{
		InputDir:  in,
		OutputDir: out,
		Renderer:  renderer,
		Expander:  fixedExpander(),
		Reporter:  reporter,
	})
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_EndToEnd(t *testing.T) {
	in := basicSite(t)
	out := filepath.Join(t.TempDir(), "out")

	result, err := newTestBuilder(t, in, out, nil).Run()
	require.NoError(t, err)

	assert.Equal(t, []string{"page.md"}, result.Pages)
	assert.False(t, result.Resources)
	assert.Equal(t, "<html>"+stamp+"<h1>Hi</h1>\n</html>", readFile(t, filepath.Join(out, "page.html")))

	_, err = os.Stat(filepath.Join(out, ResourcesDir))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "res should not be created")
}

func TestRun_CopiesResources(t *testing.T) {
	logo := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff, '\n', 0x1a}
	in := basicSite(t)
	require.NoError(t, os.MkdirAll(filepath.Join(in, "res", "css"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "res", "logo.png"), logo, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "res", "css", "site.css"), []byte("body{}"), 0644))
	out := filepath.Join(t.TempDir(), "out")

	result, err := newTestBuilder(t, in, out, nil).Run()
	require.NoError(t, err)
	assert.True(t, result.Resources)

	copied, err := os.ReadFile(filepath.Join(out, "res", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, logo, copied)
	assert.Equal(t, "body{}", readFile(t, filepath.Join(out, "res", "css", "site.css")))
}

func TestRun_ProgressNotices(t *testing.T) {
	in := writeSite(t, map[string]string{
		"header.html": "",
		"footer.html": "",
		"a.md":        "a",
		"b.md":        "b",
	})
	rec := &recordingReporter{}

	_, err := newTestBuilder(t, in, filepath.Join(t.TempDir(), "out"), rec).Run()
	require.NoError(t, err)

	assert.Equal(t, []string{"processing a.md", "processing b.md", "copying resources..."}, rec.lines)
}

func TestRun_OutputExists(t *testing.T) {
	in := basicSite(t)
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.Mkdir(out, 0755))
	marker := filepath.Join(out, "keep.txt")
	require.NoError(t, os.WriteFile(marker, []byte("untouched"), 0644))

	_, err := newTestBuilder(t, in, out, nil).Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutputExists))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "untouched", readFile(t, marker))
}

func TestRun_MissingInput(t *testing.T) {
	in := filepath.Join(t.TempDir(), "nope")
	out := filepath.Join(t.TempDir(), "out")

	_, err := newTestBuilder(t, in, out, nil).Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputMissing))
	assert.Contains(t, err.Error(), "non-existent directory")

	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))
}

func TestRun_NoMarkdown(t *testing.T) {
	in := writeSite(t, map[string]string{
		"header.html":  "",
		"footer.html":  "",
		"notes.txt":    "not markdown",
		"sub/deep.md":  "# nested pages are ignored",
		"UPPER.MD":     "# suffix is case-sensitive",
		"markdown.mdx": "# close but no",
	})

	_, err := newTestBuilder(t, in, filepath.Join(t.TempDir(), "out"), nil).Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMarkdown))
}

func TestRun_MissingTemplate(t *testing.T) {
	in := writeSite(t, map[string]string{
		"header.html": "<html>",
		"page.md":     "# Hi",
	})
	out := filepath.Join(t.TempDir(), "out")

	_, err := newTestBuilder(t, in, out, nil).Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), FooterFile)

	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "output should not be created")
}

func TestRun_UnknownMacroInPage(t *testing.T) {
	in := writeSite(t, map[string]string{
		"header.html": "<html>",
		"footer.html": "</html>",
		"page.md":     "# Hi\n\n%%bogus%%\n",
	})
	out := filepath.Join(t.TempDir(), "out")

	_, err := newTestBuilder(t, in, out, nil).Run()
	require.Error(t, err)

	var unknown *macro.UnknownMacroError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "bogus", unknown.Name)

	_, statErr := os.Stat(filepath.Join(out, "page.html"))
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "no output for the failing page")
}

func TestRun_ArityErrorInTemplate(t *testing.T) {
	in := writeSite(t, map[string]string{
		"header.html": "<html>%%include%%",
		"footer.html": "</html>",
		"page.md":     "# Hi",
	})

	_, err := newTestBuilder(t, in, filepath.Join(t.TempDir(), "out"), nil).Run()
	require.Error(t, err)

	var arity *macro.ArityError
	require.True(t, errors.As(err, &arity))
	assert.Equal(t, 1, arity.Want)
	assert.Equal(t, 0, arity.Got)
	assert.Contains(t, err.Error(), HeaderFile)
}

func TestRun_IncludeRelativeToWorkingDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "nav.html"), []byte("<nav>\nhome\n</nav>"), 0644))
	in := writeSite(t, map[string]string{
		"header.html": "<body>%%include:nav.html%%",
		"footer.html": "</body>",
		"page.md":     "text",
	})
	out := filepath.Join(t.TempDir(), "out")
	t.Chdir(root)

	_, err := newTestBuilder(t, in, out, nil).Run()
	require.NoError(t, err)
	assert.Equal(t, "<body><nav>\nhome\n</nav><p>text</p>\n</body>", readFile(t, filepath.Join(out, "page.html")))
}

func TestRun_Reproducible(t *testing.T) {
	in := basicSite(t)
	require.NoError(t, os.WriteFile(filepath.Join(in, "other.md"), []byte("- %%date%%\n- item"), 0644))
	first := filepath.Join(t.TempDir(), "out1")
	second := filepath.Join(t.TempDir(), "out2")

	_, err := newTestBuilder(t, in, first, nil).Run()
	require.NoError(t, err)
	_, err = newTestBuilder(t, in, second, nil).Run()
	require.NoError(t, err)

	for _, name := range []string{"page.html", "other.html"} {
		assert.Equal(t, readFile(t, filepath.Join(first, name)), readFile(t, filepath.Join(second, name)), name)
	}
}

type failingRenderer struct{}

func (failingRenderer) Render([]byte) ([]byte, error) {
	return nil, errors.New("malformed input")
}

func TestRun_RenderFailure(t *testing.T) {
	in := basicSite(t)
	out := filepath.Join(t.TempDir(), "out")

	b := NewBuilder(Options{
		InputDir:  in,
		OutputDir: out,
		Renderer:  failingRenderer{},
		Expander:  fixedExpander(),
	})
	_, err := b.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render ")
	assert.Contains(t, err.Error(), "malformed input")

	_, statErr := os.Stat(filepath.Join(out, "page.html"))
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))
}

func TestListPages(t *testing.T) {
	in := writeSite(t, map[string]string{
		"b.md":        "",
		"a.md":        "",
		"README.MD":   "",
		"header.html": "",
		"sub/c.md":    "",
	})
	require.NoError(t, os.Mkdir(filepath.Join(in, "dir.md"), 0755))

	pages, err := ListPages(in)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.md", "b.md"}, pages)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "index.html", OutputName("index.md"))
	assert.Equal(t, "a.b.html", OutputName("a.b.md"))
	assert.Equal(t, ".html", OutputName(".md"))
}
