package clibase

import (
	"flag"
	"fmt"
	"io"

	"genrich/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections (usage line, options, examples).
func UsageCommon(fs *flag.FlagSet, name, summary string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		// Header
		_, _ = fmt.Fprintf(out, "%s – genomic enrichment pipeline\n\n", name)
		if summary != "" {
			_, _ = fmt.Fprintf(out, "%s\n\n", summary)
		}
		_, _ = fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		_, _ = fmt.Fprintln(out, "\nMiscellaneous:")
		_, _ = fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
