package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ochairo/pyfinder/internal/domain/services"
)

func newTripleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "triple <triple>...",
		Short: "Show how build triples resolve against the mapping tables",
		Example: `  pyfinder triple aarch64-unknown-linux-gnu-pgo+lto linux64
  pyfinder triple --tables tables.yaml riscv64-unknown-linux-gnu`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.loadTables(cmd.Context())
			if err != nil {
				return err
			}
			parser := services.NewTripleParser(tables)

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TRIPLE\tARCH\tPLATFORM\tENV\tFLAVOR\tRESULT")
			for _, raw := range args {
				res := parser.Parse(raw)
				if !res.Valid() {
					fmt.Fprintf(tw, "%s\t-\t-\t-\t-\trejected: %s\n", raw, res.Reason)
					continue
				}
				t := res.Triple
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\tok\n",
					raw, t.Architecture, t.Platform, orDash(t.Environment), orDash(t.Flavor))
			}
			return tw.Flush()
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
