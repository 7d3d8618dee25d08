package main

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:       "catalog [category]",
	Short:     "List the bookable options",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"frame", "rope", "carpet", "mount"},
	RunE:      runCatalog,
}

// catalogTable lays out the options of cats in lang.
func catalogTable(cat *catalog.Catalog, cats []catalog.Category, lang locale.Language) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CATEGORY", "ID", "NAME", "DESCRIPTION")
	for _, c := range cats {
		for _, opt := range cat.Options(c) {
			t.Row(string(c), opt.ID, opt.Name.Get(lang), opt.Description.Get(lang))
		}
	}
	return t.String()
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	lang, err := locale.ParseLanguage(cfg.Language)
	if err != nil {
		return err
	}

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		if cat, err = catalog.LoadFile(cfg.CatalogFile); err != nil {
			return err
		}
	}

	cats := catalog.Categories
	if len(args) == 1 {
		c, err := catalog.ParseCategory(args[0])
		if err != nil {
			return err
		}
		cats = []catalog.Category{c}
	}

	fmt.Fprintln(cmd.OutOrStdout(), catalogTable(cat, cats, lang))
	return nil
}
