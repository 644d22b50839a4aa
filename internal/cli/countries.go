package cli

import (
	"github.com/spf13/cobra"
)

func newCountriesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "Query shipping countries and their states",
	}
	cmd.AddCommand(newCountriesListCmd(e), newCountriesStatesCmd(e))
	return cmd
}

func newCountriesListCmd(e *env) *cobra.Command {
	var pf pageFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of countries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := e.openApp(cmd.Context(), e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := pf.request(cmd, a.Paging.DefaultPageSize)
			if err != nil {
				return err
			}
			res, err := a.Locations.ListCountries(cmd.Context(), p)
			if err != nil {
				return describe(err)
			}
			return render(cmd.OutOrStdout(), e.output, res, countryTable(res))
		},
	}
	pf.bind(cmd)
	return cmd
}

func newCountriesStatesCmd(e *env) *cobra.Command {
	var pf pageFlags
	cmd := &cobra.Command{
		Use:   "states CODE",
		Short: "List one page of the states of a country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.openApp(cmd.Context(), e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := pf.request(cmd, a.Paging.DefaultPageSize)
			if err != nil {
				return err
			}
			res, err := a.Locations.ListStates(cmd.Context(), args[0], p)
			if err != nil {
				return describe(err)
			}
			return render(cmd.OutOrStdout(), e.output, res, stateTable(res))
		},
	}
	pf.bind(cmd)
	return cmd
}
