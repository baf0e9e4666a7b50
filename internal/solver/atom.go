package solver

import (
	"strconv"
	"strings"
)

// Value is a single argument of a ground atom: either an integer or a
// symbolic constant.
type Value struct {
	Num   int
	Sym   string
	IsNum bool
}

// Number wraps an integer as an atom argument.
func Number(n int) Value {
	return Value{Num: n, IsNum: true}
}

// Symbol wraps a symbolic constant as an atom argument.
func Symbol(s string) Value {
	return Value{Sym: s}
}

// String renders the value the way the solver prints it.
func (v Value) String() string {
	if v.IsNum {
		return strconv.Itoa(v.Num)
	}
	return v.Sym
}

// Atom is one ground atom from an answer set, e.g. room_gx(3,1).
type Atom struct {
	Name string
	Args []Value
}

// Int returns the i-th argument as an integer. Symbolic arguments and
// out-of-range indexes yield 0, matching the defaults the pipeline
// applies for absent facts.
func (a Atom) Int(i int) int {
	if i < 0 || i >= len(a.Args) || !a.Args[i].IsNum {
		return 0
	}
	return a.Args[i].Num
}

// Text returns the i-th argument as a string.
func (a Atom) Text(i int) string {
	if i < 0 || i >= len(a.Args) {
		return ""
	}
	return a.Args[i].String()
}

// String renders the atom in solver syntax.
func (a Atom) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return a.Name + "(" + strings.Join(parts, ",") + ")"
}

// ParseAtom parses a single ground atom token. Nested function terms do
// not occur in the dungeon programs, so arguments are plain integers or
// constants.
func ParseAtom(token string) (Atom, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Atom{}, false
	}

	open := strings.IndexByte(token, '(')
	if open < 0 {
		if !validName(token) {
			return Atom{}, false
		}
		return Atom{Name: token}, true
	}

	name := token[:open]
	if !validName(name) || !strings.HasSuffix(token, ")") {
		return Atom{}, false
	}

	inner := token[open+1 : len(token)-1]
	if inner == "" {
		return Atom{Name: name}, true
	}

	rawArgs := strings.Split(inner, ",")
	args := make([]Value, 0, len(rawArgs))
	for _, raw := range rawArgs {
		raw = strings.TrimSpace(raw)
		if n, err := strconv.Atoi(raw); err == nil {
			args = append(args, Number(n))
		} else {
			args = append(args, Symbol(raw))
		}
	}
	return Atom{Name: name, Args: args}, true
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r == '_':
		case i > 0 && (r >= '0' && r <= '9' || r >= 'A' && r <= 'Z'):
		default:
			return false
		}
	}
	return s[0] >= 'a' && s[0] <= 'z' || s[0] == '_'
}
