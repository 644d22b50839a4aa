package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var printer = message.NewPrinter(language.English)

// render writes v as JSON or YAML, or hands a tabwriter to table.
func render(w io.Writer, format string, v any, table func(tw *tabwriter.Writer)) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

func productTable(res repository.PageResult[model.Product]) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tSKU\tNAME\tPRICE\tSTOCK\tCATEGORY")
		for _, p := range res.Items {
			printer.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%d\t%d\n", p.ID, p.SKU, p.Name, p.UnitPrice, p.UnitsInStock, p.CategoryID)
		}
		pageFooter(tw, res.PageIndex, res.TotalPages, res.TotalItems)
	}
}

func categoryTable(res repository.PageResult[model.ProductCategory]) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tNAME")
		for _, c := range res.Items {
			fmt.Fprintf(tw, "%d\t%s\n", c.ID, c.CategoryName)
		}
		pageFooter(tw, res.PageIndex, res.TotalPages, res.TotalItems)
	}
}

func countryTable(res repository.PageResult[model.Country]) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tCODE\tNAME")
		for _, c := range res.Items {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Code, c.Name)
		}
		pageFooter(tw, res.PageIndex, res.TotalPages, res.TotalItems)
	}
}

func stateTable(res repository.PageResult[model.State]) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tNAME\tCOUNTRY")
		for _, s := range res.Items {
			fmt.Fprintf(tw, "%d\t%s\t%d\n", s.ID, s.Name, s.CountryID)
		}
		pageFooter(tw, res.PageIndex, res.TotalPages, res.TotalItems)
	}
}

// pageFooter prints pages one-based for humans; the flag stays zero-based.
func pageFooter(tw *tabwriter.Writer, idx, pages, items int) {
	fmt.Fprintln(tw)
	if pages == 0 {
		fmt.Fprintln(tw, "no items")
		return
	}
	printer.Fprintf(tw, "page %d of %d, %d items\n", idx+1, pages, items)
}
