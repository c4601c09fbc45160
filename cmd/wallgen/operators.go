package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/youruser/wallpaperapp/internal/operators"
)

func init() {
	var (
		rarities []int
		query    string
	)

	operatorsCmd := &cobra.Command{
		Use:   "operators",
		Short: "List operators from the local data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			roster, err := operators.LoadFromDataDir(cfg.DataDir)
			if err != nil {
				return err
			}

			out := operators.Filter(roster, operators.FilterOptions{Rarities: rarities, FreeWords: query})
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tRARITY\tCOLOR\tART")
			for _, op := range out {
				fmt.Fprintf(w, "%s\t%d\t%s\t%d\n", op.Name, op.Rarity, op.Color, len(op.ArtChoices())-1)
			}
			return w.Flush()
		},
	}
	operatorsCmd.Flags().IntSliceVar(&rarities, "rarity", nil, "only these rarities (e.g. 5,6)")
	operatorsCmd.Flags().StringVarP(&query, "query", "q", "", "free-text name filter")

	rootCmd.AddCommand(operatorsCmd)
}
