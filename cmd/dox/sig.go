package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/dox/internal/sigparser"
)

func (a *app) sigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sig <signature>",
		Short: "Parse a signature and print its structure",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := sigparser.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(e, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal signature: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", data, e)
			return nil
		},
	}
}
