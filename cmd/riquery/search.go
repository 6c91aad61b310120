package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ultrafast-optics/ultrafast/catalog/search"
)

const defaultIndexDB = "riquery.db"

func indexCmd() *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the search index from the catalog library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			cat, err := openCatalog(log)
			if err != nil {
				return err
			}

			ix, err := search.Open(indexPath(cmd, db), search.WithLogger(log))
			if err != nil {
				return err
			}
			defer ix.Close()

			count, err := ix.Rebuild(cat)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d pages\n", count)

			return nil
		},
	}

	cmd.Flags().StringVar(&db, "db", defaultIndexDB, "path to the search index database")

	return cmd
}

func searchCmd() *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:   "search <fragment>",
		Short: "Find materials by identifier or display name fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			ix, err := search.Open(indexPath(cmd, db), search.WithLogger(log))
			if err != nil {
				return err
			}
			defer ix.Close()

			results, err := ix.Query(args[0])
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "id\tbook\tpage")

			for _, r := range results {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.BookName, r.PageName)
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&db, "db", defaultIndexDB, "path to the search index database")

	return cmd
}

// indexPath prefers an explicit --db flag, then RIQUERY_DB, then the
// default next to the working directory.
func indexPath(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed("db") {
		return flagValue
	}

	if env := os.Getenv("RIQUERY_DB"); env != "" {
		return env
	}

	return flagValue
}
