package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arloliu/splitkit/registry"
)

// textReport is implemented by every command result.
type textReport interface {
	WriteText(w io.Writer) error
}

type formatter func(w io.Writer, r textReport) error

var formatters = registry.New[string, formatter]("output format").
	MustRegister(func(w io.Writer, r textReport) error {
		return r.WriteText(w)
	}, "text", "txt").
	MustRegister(func(w io.Writer, r textReport) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(r)
	}, "json")

// render writes r to the command output in the format chosen by --output.
func render(cmd *cobra.Command, r textReport) error {
	name, _ := cmd.Flags().GetString("output")
	f, err := formatters.Lookup(name)
	if err != nil {
		return err
	}

	return f(cmd.OutOrStdout(), r)
}

// readJSON decodes a file, or stdin for "-".
func readJSON(cmd *cobra.Command, path string, v any) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return err
		}
		defer fh.Close()
		r = fh
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}

func weightString(w float64) string {
	return humanize.CommafWithDigits(w, 3)
}
