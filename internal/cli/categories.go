package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

func newCategoriesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Query product categories",
	}
	cmd.AddCommand(newCategoriesListCmd(e), newCategoriesGetCmd(e))
	return cmd
}

func newCategoriesListCmd(e *env) *cobra.Command {
	var pf pageFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of categories",
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
			res, err := a.Categories.ListCategories(cmd.Context(), p)
			if err != nil {
				return describe(err)
			}
			return render(cmd.OutOrStdout(), e.output, res, categoryTable(res))
		},
	}
	pf.bind(cmd)
	return cmd
}

func newCategoriesGetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}
			a, err := e.openApp(cmd.Context(), e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.Categories.GetCategory(cmd.Context(), id)
			if err != nil {
				return describe(err)
			}
			res := repository.NewPageResult([]model.ProductCategory{c}, repository.PageRequest{PageSize: 1}, 1)
			return render(cmd.OutOrStdout(), e.output, c, categoryTable(res))
		},
	}
}
