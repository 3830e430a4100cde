// Package macro implements the %%name:arg%% substitution language used in
// page sources and header/footer templates.
package macro

import (
	"fmt"
	"os"
	"time"
)

// DateLayout is the layout used by the date macro.
const DateLayout = time.ANSIC

// Env holds the impure collaborators available to macro handlers.
type Env struct {
	Now      func() time.Time
	ReadFile func(name string) ([]byte, error)
}

// DefaultEnv reads the system clock and the real filesystem.
func DefaultEnv() Env {
	return Env{
		Now:      time.Now,
		ReadFile: os.ReadFile,
	}
}

// Handler produces the replacement text for a macro invocation.
// It is only called with exactly Arity arguments.
type Handler func(env Env, args []string) (string, error)

// Definition describes a single macro.
type Definition struct {
	Name    string
	Arity   int
	Handler Handler
}

// Registry maps macro names to their definitions.
// Adding a new macro = adding one entry here.
var Registry = map[string]Definition{
	"date": {
		Name:    "date",
		Arity:   0,
		Handler: dateMacro,
	},
	"include": {
		Name:    "include",
		Arity:   1,
		Handler: includeMacro,
	},
}

// Lookup returns the definition registered under name.
// Unlike markdown extension names, macro names are case-sensitive.
func Lookup(name string) (Definition, bool) {
	def, ok := Registry[name]
	return def, ok
}

func dateMacro(env Env, _ []string) (string, error) {
	return env.Now().Format(DateLayout), nil
}

// includeMacro returns the file contents untouched. Paths are resolved
// against the working directory, not the input directory.
func includeMacro(env Env, args []string) (string, error) {
	data, err := env.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("include %s: %w", args[0], err)
	}
	return string(data), nil
}
