package macro

import (
	"log/slog"
	"strings"
)

// Delimiter opens and closes a macro invocation.
const Delimiter = "%%"

// Invocation is a macro call recognized on a single line.
type Invocation struct {
	Prefix string
	Name   string
	Args   []string
	Suffix string
}

// ParseLine recognizes the invocation on line, if any. Only the first two
// delimiters form the pair; anything after the second one, further
// delimiters included, is returned verbatim as the suffix.
func ParseLine(line string) (Invocation, bool) {
	open := strings.Index(line, Delimiter)
	if open < 0 {
		return Invocation{}, false
	}
	rest := line[open+len(Delimiter):]
	end := strings.Index(rest, Delimiter)
	if end < 0 {
		return Invocation{}, false
	}

	parts := strings.Split(rest[:end], ":")
	return Invocation{
		Prefix: line[:open],
		Name:   strings.TrimSpace(parts[0]),
		Args:   parts[1:],
		Suffix: rest[end+len(Delimiter):],
	}, true
}

// Expander substitutes macro invocations in text.
type Expander struct {
	env    Env
	logger *slog.Logger
}

// NewExpander creates an expander whose handlers run against env.
// A nil logger falls back to slog.Default().
func NewExpander(env Env, logger *slog.Logger) *Expander {
	if logger == nil {
		logger = slog.Default()
	}
	return &Expander{env: env, logger: logger}
}

// Expand performs a single pass over text, replacing at most one invocation
// per line. Replacement text is never re-scanned. Text without delimiters is
// returned unchanged.
func (x *Expander) Expand(text string) (string, error) {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		inv, ok := ParseLine(line)
		if !ok {
			out = append(out, line)
			continue
		}

		replacement, err := x.Invoke(inv)
		if err != nil {
			return "", err
		}
		out = append(out, inv.Prefix+replacement+inv.Suffix)
	}

	return strings.Join(out, "\n"), nil
}

// Invoke runs the handler for inv after checking the name and arity.
func (x *Expander) Invoke(inv Invocation) (string, error) {
	def, ok := Lookup(inv.Name)
	if !ok {
		return "", &UnknownMacroError{Name: inv.Name}
	}
	if len(inv.Args) != def.Arity {
		return "", &ArityError{Name: inv.Name, Want: def.Arity, Got: len(inv.Args)}
	}

	x.logger.Debug("expanding macro", slog.String("macro", inv.Name), slog.Any("args", inv.Args))
	return def.Handler(x.env, inv.Args)
}
