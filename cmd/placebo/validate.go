package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Parse every modifier definition and print the resolved catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mods, err := a.loadCatalogs(cmd)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID\tATTRIBUTE\tOPERATION\tVALUE")
			for _, name := range mods.Names() {
				def, _ := mods.Get(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					name, def.ID(), def.Attribute().Key, def.Operation(), def.Value())
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d definitions OK\n", mods.Len())
			return nil
		},
	}
}
