// Package flagx lets independent config loaders pick their own flags out of
// the process arguments without tripping over each other.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Only keeps the arguments that belong to the named flags, values included.
// Names are given without dashes; "-x v", "--x v" and "-x=v" all match "x".
// A following token that starts with "-" is never taken as a value.
func Only(args []string, names ...string) []string {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.TrimLeft(n, "-")] = true
	}

	var out []string
	for i := 0; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "-") {
			continue
		}
		name, _, inline := strings.Cut(strings.TrimLeft(args[i], "-"), "=")
		if !want[name] {
			continue
		}

		out = append(out, args[i])
		if !inline && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

// ConfigPath returns the file named by -c or -config, or "". The last one
// given wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "c", "", "config file")
	fs.StringVar(&path, "config", "", "config file")
	_ = fs.Parse(Only(args, "c", "config"))

	return path
}
