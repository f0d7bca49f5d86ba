// Package flagx lets several configuration stages share os.Args: each stage
// filters the arguments down to the flags it owns before parsing them.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the arguments of args that belong to allowedFlags,
// together with their values.
//
// Names are compared without leading dashes, so "-u" in allowedFlags also
// matches "--u". Supported forms:
//
//	-u users.txt
//	--config=conf.yaml
//	-s              (for names listed in boolFlags, never consumes a value)
//
// Filtering stops at a bare "--".
func FilterArgs(args []string, allowedFlags []string, boolFlags ...string) []string {
	allowed := make(map[string]bool, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[flagName(f)] = false
	}
	for _, f := range boolFlags {
		allowed[flagName(f)] = true
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		isBool, ok := allowed[flagName(name)]
		if !ok {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue || isBool {
			continue
		}

		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

func flagName(s string) string {
	return strings.TrimLeft(s, "-")
}

// ConfigFileFlag returns the configuration file path given with -c or
// -config in args, or "" when neither is present. Other arguments are
// ignored; when both are given the last one wins.
func ConfigFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to YAML config file")
	fs.StringVar(&path, "c", "", "path to YAML config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
