// Package adapters resolves command-line arguments into byte sources.
package adapters

import (
	"os"
	"strings"

	"github.com/bft-labs/runeguard/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/runeguard/internal/adapters/http"
	"github.com/bft-labs/runeguard/internal/ports"
)

// StdinName is the argument that selects standard input.
const StdinName = "-"

// FromArg returns the source for one argument: http(s) URLs are fetched,
// "-" reads stdin, anything else is a file path.
func FromArg(arg string, client ports.HTTPClient, maxBytes int64) ports.Source {
	switch {
	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		return httpAdapter.NewSource(arg, client, maxBytes)
	case arg == StdinName:
		return fs.NewReaderSource(StdinName, os.Stdin, maxBytes)
	default:
		return fs.NewFileSource(arg, maxBytes)
	}
}

// FromArgs maps FromArg over args.
func FromArgs(args []string, client ports.HTTPClient, maxBytes int64) []ports.Source {
	out := make([]ports.Source, 0, len(args))
	for _, a := range args {
		out = append(out, FromArg(a, client, maxBytes))
	}
	return out
}
