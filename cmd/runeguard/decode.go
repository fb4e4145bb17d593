package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bft-labs/runeguard/internal/adapters"
	"github.com/bft-labs/runeguard/internal/domain"
	"github.com/bft-labs/runeguard/pkg/log"
	"github.com/bft-labs/runeguard/pkg/utf8dec"
)

func newDecodeCommand(a *cli) *cobra.Command {
	var chars bool

	cmd := &cobra.Command{
		Use:   "decode <source>",
		Short: "Print the code points of one source, stopping at the first error",
		Long: "Decode one file, URL or stdin (-) and print one code point per line as U+XXXX.\n" +
			"On invalid input the code points decoded so far are printed, followed by the error.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			src := adapters.FromArg(args[0], a.httpClient(), a.cfg.MaxBytes)
			data, err := src.Load(ctx)
			if err != nil {
				return fmt.Errorf("load %s: %w", src.Name(), err)
			}

			n, err := decodeTo(os.Stdout, data, a.cfg.StartOffset, chars)
			if err != nil {
				a.log.Warn("decode failed",
					log.String("source", src.Name()),
					log.Int("code_points", n),
					log.Err(err))
				fmt.Fprintln(os.Stderr, err)
				return domain.ErrInvalidInput
			}
			a.log.Debug("decoded", log.String("source", src.Name()), log.Int("code_points", n))
			return nil
		},
	}

	cmd.Flags().BoolVar(&chars, "chars", false, "print the characters themselves instead of U+XXXX")
	return cmd
}

// decodeTo writes the code points of data from start to w, one per line.
// Output is flushed before a decoding error is returned.
func decodeTo(w io.Writer, data []byte, start int, chars bool) (int, error) {
	d, err := utf8dec.DecodeBytes(data, start)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	n := 0
	var decodeErr error
	for r, err := range d.Runes() {
		if err != nil {
			decodeErr = err
			break
		}
		if chars {
			fmt.Fprintf(bw, "%c\n", r)
		} else {
			fmt.Fprintf(bw, "U+%04X\n", r)
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, err
	}
	return n, decodeErr
}
