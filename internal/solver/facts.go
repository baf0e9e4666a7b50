package solver

import (
	"fmt"
	"strings"
)

// Facts accumulates an ASP instance: constants and ground facts emitted
// as program text. It is how one pipeline stage hands its answer to the
// next one.
type Facts struct {
	lines []string
}

// Const appends a "#const name = value." definition.
func (f *Facts) Const(name string, value int) {
	f.lines = append(f.lines, fmt.Sprintf("#const %s = %d.", name, value))
}

// Add appends a ground fact. Arguments may be ints or strings; strings
// are emitted verbatim as symbolic constants.
func (f *Facts) Add(name string, args ...any) {
	if len(args) == 0 {
		f.lines = append(f.lines, name+".")
		return
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	f.lines = append(f.lines, fmt.Sprintf("%s(%s).", name, strings.Join(parts, ",")))
}

// AddAtom appends a parsed atom back as a fact.
func (f *Facts) AddAtom(a Atom) {
	f.lines = append(f.lines, a.String()+".")
}

// Empty reports whether no facts have been added.
func (f *Facts) Empty() bool {
	return len(f.lines) == 0
}

// String renders the instance as program text, one statement per line.
func (f *Facts) String() string {
	return strings.Join(f.lines, "\n") + "\n"
}
