package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codemend/pkg/recipe"
	"github.com/Sumatoshi-tech/codemend/pkg/recipes"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	noColor := false

	cmd := &cobra.Command{
		Use:   "describe <recipe-id>",
		Short: "Show one recipe in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := recipes.DefaultRegistry().Get(args[0])
			if err != nil {
				return err
			}

			describe(cmd, entry, noColor)

			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

func describe(cmd *cobra.Command, entry recipe.Entry, noColor bool) {
	writer := cmd.OutOrStdout()
	descriptor := entry.Descriptor()

	heading := func(text string) string {
		if noColor {
			return text
		}

		return color.New(color.Bold).Sprint(text)
	}

	fmt.Fprintf(writer, "%s (%s)\n", heading(descriptor.DisplayName), descriptor.ID)
	fmt.Fprintf(writer, "  %s\n", descriptor.Description)

	if len(descriptor.Tags) > 0 {
		fmt.Fprintf(writer, "  Tags: %s\n", strings.Join(descriptor.Tags, ", "))
	}

	configurable, ok := entry.(recipe.Configurable)
	if !ok {
		return
	}

	fmt.Fprintf(writer, "\n%s\n", heading("Options"))

	for _, option := range configurable.Options() {
		fmt.Fprintf(writer, "  %s (%s, default %v)\n    %s\n",
			option.Name, option.Type, option.Default, option.Description)
	}
}
