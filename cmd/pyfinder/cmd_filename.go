package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ochairo/pyfinder/internal/domain/services"
)

func newFilenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "filename <name-or-url>...",
		Short:   "Show how release asset names parse",
		Example: `  pyfinder filename cpython-3.12.1+20240107-x86_64-unknown-linux-gnu-lto-full.tar.zst`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.loadTables(cmd.Context())
			if err != nil {
				return err
			}
			parser := services.NewFilenameParser(services.NewTripleParser(tables))

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILENAME\tVERSION\tTRIPLE\tRESULT")
			for _, arg := range args {
				name := services.FilenameFromURL(arg)
				d, reason := parser.ParseURL(arg)
				if reason != "" {
					fmt.Fprintf(tw, "%s\t-\t-\trejected: %s\n", name, reason)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\tok\n", name, d.Version, d.Triple)
			}
			return tw.Flush()
		},
	}
}
