package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "odq",
		Short:         "Compose and execute OData-style resource requests",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(newURLCmd())
	cmd.AddCommand(newGetCmd())
	return cmd
}

// parseOrderBy parses repeatable "--orderby Field" / "--orderby Field:desc"
// flags into successive OrderBy calls.
func parseOrderBy(spec string) (field string, ascending bool) {
	field, dir, found := strings.Cut(spec, ":")
	if found && strings.EqualFold(strings.TrimSpace(dir), "desc") {
		return strings.TrimSpace(field), false
	}
	return strings.TrimSpace(field), true
}
