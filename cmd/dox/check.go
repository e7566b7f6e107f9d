package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [path...]",
		Short: "Process documentation and list unresolved links",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Links are always collected; strictness is applied after
			// they are printed.
			cfg := a.cfg
			cfg.StrictLinks = false
			res, err := a.build(cfg, args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, l := range res.Links {
				fmt.Fprintf(w, "%s: unresolved link to %s\n", l.From, l.Target)
			}
			r := res.Report
			fmt.Fprintf(w, "%d entries (%d top-level, %d second-level), %d unresolved links\n",
				r.Entries, r.TopLevel, r.SecondLevel, r.Unresolved)
			if a.cfg.StrictLinks && len(res.Links) > 0 {
				return fmt.Errorf("%d unresolved links", len(res.Links))
			}
			return nil
		},
	}
}
