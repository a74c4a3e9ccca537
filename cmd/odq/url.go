package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odqkit/odq/pkg/queryable"
)

func newURLCmd() *cobra.Command {
	var (
		base     string
		paths    []string
		filter   string
		selects  []string
		expands  []string
		orderbys []string
		skip     int
		top      int
	)

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Compose a resource URL offline and print it",
		Long: `Composes a resource URL from a base, path suffixes and query modifiers
without touching the network, including the aliased-parameter rewrite for
path-embedded '!@label::value' tokens.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if base == "" {
				return errors.New("--base is required")
			}
			col := queryable.NewCollection(base, paths...)
			if filter != "" {
				col.Filter(filter)
			}
			if len(selects) > 0 {
				col.Select(selects...)
			}
			if len(expands) > 0 {
				col.Expand(expands...)
			}
			for _, spec := range orderbys {
				field, asc := parseOrderBy(spec)
				col.OrderBy(field, asc)
			}
			if skip > 0 {
				col.Skip(skip)
			}
			if top > 0 {
				col.Top(top)
			}
			fmt.Fprintln(cmd.OutOrStdout(), col.ToURLAndQuery())
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "base resource URL (absolute or service-relative)")
	cmd.Flags().StringArrayVar(&paths, "path", nil, "path suffix to append (repeatable)")
	cmd.Flags().StringVar(&filter, "filter", "", "$filter expression")
	cmd.Flags().StringSliceVar(&selects, "select", nil, "fields for $select")
	cmd.Flags().StringSliceVar(&expands, "expand", nil, "navigation properties for $expand")
	cmd.Flags().StringArrayVar(&orderbys, "orderby", nil, "sort field, 'Field' or 'Field:desc' (repeatable)")
	cmd.Flags().IntVar(&skip, "skip", 0, "$skip value")
	cmd.Flags().IntVar(&top, "top", 0, "$top value")
	return cmd
}
