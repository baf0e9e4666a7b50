package solver

import (
	"errors"
	"strings"
)

// ErrUnsat is returned when the solver proves the instance has no model.
var ErrUnsat = errors.New("no model found")

// Result holds the last answer set of a solver run.
type Result struct {
	// Satisfiable is true when the output reported SATISFIABLE or
	// OPTIMUM FOUND.
	Satisfiable bool
	// Optimum is true when the solver proved optimality.
	Optimum bool
	// Atoms are the shown atoms of the last answer set.
	Atoms []Atom
}

// All returns every atom with the given predicate name.
func (r *Result) All(name string) []Atom {
	var out []Atom
	for _, a := range r.Atoms {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out
}

// Has reports whether at least one atom with the given name is present.
func (r *Result) Has(name string) bool {
	for _, a := range r.Atoms {
		if a.Name == name {
			return true
		}
	}
	return false
}

// ParseOutput extracts the last answer set from raw clingo output.
// Clingo prints each answer as an "Answer: N" header followed by one or
// more lines of whitespace-separated atoms, then a status line such as
// SATISFIABLE, UNSATISFIABLE or OPTIMUM FOUND.
func ParseOutput(output string) (*Result, error) {
	if strings.Contains(output, "UNSATISFIABLE") {
		return nil, ErrUnsat
	}

	res := &Result{
		Satisfiable: strings.Contains(output, "SATISFIABLE") || strings.Contains(output, "OPTIMUM FOUND"),
		Optimum:     strings.Contains(output, "OPTIMUM FOUND"),
	}
	if !res.Satisfiable {
		return nil, ErrUnsat
	}

	lines := strings.Split(output, "\n")
	var block []string
	for i := 0; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], "Answer:") {
			continue
		}
		// Collect atom lines until the next section of the report.
		block = block[:0]
		for j := i + 1; j < len(lines); j++ {
			line := strings.TrimSpace(lines[j])
			if line == "" || answerTerminator(line) {
				break
			}
			block = append(block, line)
		}
	}

	for _, line := range block {
		for _, token := range strings.Fields(line) {
			if atom, ok := ParseAtom(token); ok {
				res.Atoms = append(res.Atoms, atom)
			}
		}
	}
	return res, nil
}

func answerTerminator(line string) bool {
	for _, prefix := range []string{"Answer:", "Optimization:", "SATISFIABLE", "OPTIMUM", "Models", "Calls", "Time", "CPU"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
