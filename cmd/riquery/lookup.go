package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func lookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <id>",
		Short: "Show a catalog entry's formula, range, and references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			cat, err := openCatalog(log)
			if err != nil {
				return err
			}

			id := args[0]

			m, err := cat.Lookup(id)
			if err != nil {
				return err
			}

			lo, hi := m.Range()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintf(w, "id\t%s\n", id)
			fmt.Fprintf(w, "name\t%s\n", m.Name())
			fmt.Fprintf(w, "formula\t%s\n", m.Formula().Kind())
			fmt.Fprintf(w, "range\t%g – %g µm\n", lo, hi)

			if refs := strings.TrimSpace(m.References()); refs != "" {
				fmt.Fprintf(w, "references\t%s\n", firstLine(refs))
			}

			if comments := strings.TrimSpace(m.Comments()); comments != "" {
				fmt.Fprintf(w, "comments\t%s\n", firstLine(comments))
			}

			return w.Flush()
		},
	}

	return cmd
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}
