package state

import "strings"

// FromArgs parses command line arguments of the form --a.b=c, -a=c and --flag
// into a State. A flag without a value is stored as true. Arguments that do
// not start with a dash are returned in order as positional arguments.
// Everything after a bare "--" is positional.
func FromArgs(args []string) (*State, []string) {
	s := &State{}
	var positional []string
	for i, arg := range args {
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positional = append(positional, arg)
			continue
		}

		key, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		path := Path(key)
		if len(path) == 0 {
			continue
		}
		if hasValue {
			s.Set(value, path...)
		} else {
			s.Set(true, path...)
		}
	}
	return s, positional
}
