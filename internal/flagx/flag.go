// Package flagx splits command-line arguments between the configuration loader
// and the command tree: config flags are filtered in for the loader and
// stripped out before the remaining arguments reach cobra.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns only the allowed flags (and their values) from args.
// Both "-f value" and "-f=value" forms are recognised; a leading "--" is
// treated like "-".
func FilterArgs(args []string, allowedFlags []string) []string {
	filtered, _ := split(args, allowedFlags)
	return filtered
}

// StripArgs is the complement of FilterArgs: it returns args without the
// listed flags and their values, preserving order.
func StripArgs(args []string, flags []string) []string {
	_, rest := split(args, flags)
	return rest
}

// ConfigFileFlag extracts the config file path given via -c or -config.
// It returns "" when neither is present.
func ConfigFileFlag(args []string) string {
	var config string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "path to config file")
	fs.StringVar(&config, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return config
}

func split(args []string, names []string) (matched, rest []string) {
	allowed := make(map[string]struct{}, len(names))
	for _, f := range names {
		allowed[normalize(f)] = struct{}{}
	}

	matched = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[normalize(name)]; ok {
				matched = append(matched, normalize(name)+arg[len(name):])
			} else {
				rest = append(rest, arg)
			}
			continue
		}

		if _, ok := allowed[normalize(arg)]; ok {
			matched = append(matched, normalize(arg))
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				matched = append(matched, args[i+1])
				i++
			}
			continue
		}

		rest = append(rest, arg)
	}

	return matched, rest
}

// normalize maps "--name" to "-name"; the stdlib flag package accepts both.
func normalize(name string) string {
	if strings.HasPrefix(name, "--") {
		return name[1:]
	}
	return name
}
