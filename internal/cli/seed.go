package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/maxviazov/product-catalog-service/internal/app"
	"github.com/maxviazov/product-catalog-service/internal/fixture"
)

func newSeedCmd(e *env) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML catalog into the configured store",
		Long: `Load a YAML catalog into the configured store in one transaction.
Without --file the sample catalog bundled with the binary is used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := fixture.Sample()
			if file != "" {
				var err error
				if cat, err = fixture.Load(file); err != nil {
					return err
				}
			}

			store, err := app.OpenStore(cmd.Context(), e.cfg, e.logger)
			if err != nil {
				return err
			}
			a := app.Build(store, app.Paging(e.cfg.Catalog), e.logger)
			defer a.Close()

			out, err := a.Seeder.Seed(cmd.Context(), cat)
			if err != nil {
				return describe(err)
			}
			return render(cmd.OutOrStdout(), e.output, out, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "seeded %d categories, %d products, %d countries and %d states\n", out.Categories, out.Products, out.Countries, out.States)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog YAML file")
	return cmd
}
