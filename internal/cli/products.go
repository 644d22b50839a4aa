package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maxviazov/product-catalog-service/internal/handler"
	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

// pageFlags are shared by every listing command.
type pageFlags struct {
	page int
	size int
	sort string
}

func (f *pageFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 0, "zero-based page index")
	cmd.Flags().IntVar(&f.size, "size", 0, "page size (default catalog.default_page_size)")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort as field[:asc|desc]")
}

// request mirrors the HTTP rules: an unset --size takes the default, an explicit 0 is rejected by the service.
func (f *pageFlags) request(cmd *cobra.Command, defaultSize int) (repository.PageRequest, error) {
	p := repository.PageRequest{PageIndex: f.page, PageSize: f.size}
	if !cmd.Flags().Changed("size") {
		p.PageSize = defaultSize
	}
	if f.sort != "" {
		key, dir, err := handler.ParseSort(f.sort)
		if err != nil {
			return p, fmt.Errorf("--sort: %w", err)
		}
		p.SortKey, p.SortDirection = key, dir
	}
	return p, nil
}

func newProductsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Query products in the configured store",
	}
	cmd.AddCommand(newProductsListCmd(e), newProductsSearchCmd(e), newProductsGetCmd(e))
	return cmd
}

func newProductsListCmd(e *env) *cobra.Command {
	var (
		category int64
		pf       pageFlags
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of the products in a category",
		Example: `  # Second page of category 1, three per page, most expensive first
  catalog products list --category 1 --page 1 --size 3 --sort unit_price:desc`,
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
			res, err := a.Products.ListProductsByCategory(cmd.Context(), category, p)
			if err != nil {
				return describe(err)
			}
			return render(cmd.OutOrStdout(), e.output, res, productTable(res))
		},
	}
	cmd.Flags().Int64Var(&category, "category", 0, "category id")
	_ = cmd.MarkFlagRequired("category")
	pf.bind(cmd)
	return cmd
}

func newProductsSearchCmd(e *env) *cobra.Command {
	var (
		name string
		pf   pageFlags
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find products whose name contains a keyword",
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
			res, err := a.Products.SearchProductsByName(cmd.Context(), name, p)
			if err != nil {
				return describe(err)
			}
			return render(cmd.OutOrStdout(), e.output, res, productTable(res))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "case-insensitive keyword")
	_ = cmd.MarkFlagRequired("name")
	pf.bind(cmd)
	return cmd
}

func newProductsGetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			a, err := e.openApp(cmd.Context(), e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.Products.GetProduct(cmd.Context(), id)
			if err != nil {
				return describe(err)
			}
			res := repository.NewPageResult([]model.Product{p}, repository.PageRequest{PageSize: 1}, 1)
			return render(cmd.OutOrStdout(), e.output, p, productTable(res))
		},
	}
}
