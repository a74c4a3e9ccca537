package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/odqkit/odq/pkg/config"
	"github.com/odqkit/odq/pkg/odclient"
)

func newGetCmd() *cobra.Command {
	var (
		profilePath string
		base        string
		filter      string
		selects     []string
		expands     []string
		orderbys    []string
		top         int
	)

	cmd := &cobra.Command{
		Use:   "get <resource-path>",
		Short: "Execute a GET against the service and print the payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c *odclient.Client
			switch {
			case profilePath != "":
				p, err := config.Load(profilePath)
				if err != nil {
					return err
				}
				c = odclient.NewFromProfile(p)
			case base != "":
				c = odclient.New(base)
			default:
				return errors.New("either --profile or --base is required")
			}

			col := c.Collection(args[0])
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
			if top > 0 {
				col.Top(top)
			}

			out, err := c.Get(cmd.Context(), col.Queryable)
			if err != nil {
				return err
			}
			var data []byte
			if prettyOutput() {
				data, err = json.MarshalIndent(out, "", "  ")
			} else {
				data, err = json.Marshal(out)
			}
			if err != nil {
				return fmt.Errorf("encode payload: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "path to a profile yaml")
	cmd.Flags().StringVar(&base, "base", "", "absolute service root (overrides --profile)")
	cmd.Flags().StringVar(&filter, "filter", "", "$filter expression")
	cmd.Flags().StringSliceVar(&selects, "select", nil, "fields for $select")
	cmd.Flags().StringSliceVar(&expands, "expand", nil, "navigation properties for $expand")
	cmd.Flags().StringArrayVar(&orderbys, "orderby", nil, "sort field, 'Field' or 'Field:desc' (repeatable)")
	cmd.Flags().IntVar(&top, "top", 0, "$top value")
	return cmd
}

func prettyOutput() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
