package macro

import "fmt"

// UnknownMacroError is returned when an invocation names a macro that is not
// in the Registry.
type UnknownMacroError struct {
	Name string
}

func (e *UnknownMacroError) Error() string {
	return fmt.Sprintf("unknown macro '%s'", e.Name)
}

// ArityError is returned when an invocation supplies the wrong number of
// arguments for a registered macro.
type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("wrong number of args for '%s' macro. expect %d got %d", e.Name, e.Want, e.Got)
}
