package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) showCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "show --entry NAME [path...]",
		Short: "Build the documentation and print one processed entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.build(a.cfg, args)
			if err != nil {
				return err
			}
			me, ok := res.Doc.ExportEntry(name)
			if !ok {
				return fmt.Errorf("entry %q not found", name)
			}
			return writeJSON("", cmd.OutOrStdout(), me)
		},
	}
	cmd.Flags().StringVarP(&name, "entry", "e", "", "entry name, e.g. String::length")
	_ = cmd.MarkFlagRequired("entry")
	return cmd
}
