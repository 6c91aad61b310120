package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ultrafast-optics/ultrafast/catalog"
)

func evalCmd() *cobra.Command {
	var (
		at        []float64
		unbounded bool
	)

	cmd := &cobra.Command{
		Use:   "eval <id>",
		Short: "Evaluate n, group index, and GVD at one or more wavelengths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(at) == 0 {
				return errors.New("no wavelengths given (use --at)")
			}

			log := newLogger()

			cat, err := openCatalog(log)
			if err != nil {
				return err
			}

			m, err := cat.LookupWith(args[0], catalog.BuildOptions{Unbounded: unbounded})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "λ (µm)\tn\tng\tGVD (fs²/mm)\t")

			for _, lambda := range at {
				n, err := m.Index(lambda)
				if err != nil {
					return err
				}

				ng, err := m.GroupIndex(lambda)
				if err != nil {
					return err
				}

				gvd, err := m.GVD(lambda)
				if err != nil {
					return err
				}

				fmt.Fprintf(w, "%g\t%.5f\t%.5f\t%.3f\t\n", lambda, n, ng, gvd*1000)
			}

			return w.Flush()
		},
	}

	cmd.Flags().Float64SliceVar(&at, "at", nil, "wavelength in µm (repeatable)")
	cmd.Flags().BoolVar(&unbounded, "unbounded", false, "evaluate outside the entry's stated range")

	return cmd
}
