// Package getopt parses the arguments of mdhtml commands.
//
// Unlike the flag package, options may appear anywhere among the arguments,
// as in "mdhtml parse notes.md --output notes.html". The syntax follows GNU's
// getopt_long: long options start with "--" and take their argument either
// after "=" or as the next argument; short options start with "-", can be
// chained, and take their argument either directly attached or as the next
// argument. A "--" argument ends option parsing.
package getopt

import (
	"fmt"
	"strings"
)

// OptionSpec is a command-line option.
type OptionSpec struct {
	// Short option. Set to 0 for long-only.
	Short rune
	// Long option. Set to "" for short-only.
	Long string
	// Whether the option takes an argument.
	Arity Arity
}

// Arity indicates whether an option takes an argument.
type Arity uint

const (
	// The option takes no argument.
	NoArgument Arity = iota
	// The option requires an argument.
	RequiredArgument
)

// Option represents a parsed option.
type Option struct {
	Spec *OptionSpec
	// Whether the option was given in the long form.
	Long     bool
	Argument string
}

func (o *Option) String() string {
	if o.Long {
		return "--" + o.Spec.Long
	}
	return "-" + string(o.Spec.Short)
}

// Parse parses an argument list. It returns the parsed options and the
// non-option arguments. Parsing stops at the first unknown option or option
// missing its argument, and the error describes it.
func Parse(args []string, specs []*OptionSpec) ([]*Option, []string, error) {
	var (
		opts       []*Option
		nonOptArgs []string
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var parsed []*Option
		var err error
		switch {
		case arg == "--":
			return opts, append(nonOptArgs, args[i+1:]...), nil
		case strings.HasPrefix(arg, "--"):
			var opt *Option
			opt, err = parseLong(arg[2:], specs)
			parsed = []*Option{opt}
		case strings.HasPrefix(arg, "-") && arg != "-":
			parsed, err = parseShort(arg[1:], specs)
		default:
			nonOptArgs = append(nonOptArgs, arg)
			continue
		}
		if err != nil {
			return opts, nonOptArgs, err
		}
		// Only the last option of a chain can miss its argument.
		last := parsed[len(parsed)-1]
		if needsArgument(last, arg) {
			if i+1 == len(args) {
				return opts, nonOptArgs, fmt.Errorf("missing argument for %s", last)
			}
			i++
			last.Argument = args[i]
		}
		opts = append(opts, parsed...)
	}
	return opts, nonOptArgs, nil
}

// needsArgument reports whether opt, parsed from arg, takes its argument
// from the next element of the argument list.
func needsArgument(opt *Option, arg string) bool {
	if opt.Spec.Arity != RequiredArgument || opt.Argument != "" {
		return false
	}
	// An explicit empty argument, as in "--output=".
	return !(opt.Long && strings.HasSuffix(arg, "="))
}

// Parses short options, without the leading dash.
func parseShort(s string, specs []*OptionSpec) ([]*Option, error) {
	var opts []*Option
	for i, r := range s {
		spec := findShort(r, specs)
		if spec == nil {
			return nil, fmt.Errorf("unknown option -%c", r)
		}
		opt := &Option{Spec: spec}
		opts = append(opts, opt)
		if spec.Arity == RequiredArgument {
			opt.Argument = s[i+len(string(r)):]
			break
		}
	}
	return opts, nil
}

func findShort(r rune, specs []*OptionSpec) *OptionSpec {
	for _, spec := range specs {
		if r == spec.Short {
			return spec
		}
	}
	return nil
}

// Parses a long option, without the leading dashes.
func parseLong(s string, specs []*OptionSpec) (*Option, error) {
	name, argument, hasArgument := strings.Cut(s, "=")
	for _, spec := range specs {
		if spec.Long == "" || name != spec.Long {
			continue
		}
		if hasArgument && spec.Arity == NoArgument {
			return nil, fmt.Errorf("option --%s takes no argument", name)
		}
		return &Option{Spec: spec, Long: true, Argument: argument}, nil
	}
	return nil, fmt.Errorf("unknown option --%s", name)
}
