package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) newTeamsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "teams [file]",
		Short: "List the team catalog, or detect the teams of a report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.newService()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if len(args) == 0 {
				fmt.Fprintln(tw, "ID\tNAME\tALIASES")
				for _, t := range svc.Teams() {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Display, strings.Join(t.Aliases, ", "))
				}
				return tw.Flush()
			}

			pages, err := readDocument(args[0])
			if err != nil {
				return err
			}
			r := svc.Resolver()
			d := r.Detect(strings.Join(pages, "\n"))
			fmt.Fprintf(tw, "Strategy\t%s\n", d.Strategy)
			for i, id := range d.Teams {
				fmt.Fprintf(tw, "Team %d\t%s (%s)\n", i+1, r.Display(id), id)
			}
			return tw.Flush()
		},
	}
}
