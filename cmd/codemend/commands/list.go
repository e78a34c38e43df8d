package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codemend/pkg/recipes"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available recipes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			listing := table.NewWriter()
			listing.SetOutputMirror(cmd.OutOrStdout())
			listing.AppendHeader(table.Row{"ID", "Name", "Tags", "Description"})

			for _, descriptor := range recipes.DefaultRegistry().List() {
				listing.AppendRow(table.Row{
					descriptor.ID,
					descriptor.DisplayName,
					strings.Join(descriptor.Tags, ", "),
					descriptor.Description,
				})
			}

			listing.Render()
		},
	}
}
