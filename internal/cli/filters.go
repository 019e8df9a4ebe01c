package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/imagefilter"
)

// Output formats of the filters command.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func newFiltersCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List the available filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeFilters(cmd.OutOrStdout(), format, imagefilter.Describe())
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", outputText, "output format: text, json, yaml")

	return cmd
}

func writeFilters(w io.Writer, format string, infos []imagefilter.FilterInfo) error {
	switch format {
	case outputText:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tPARAMS\tDESCRIPTION")
		for _, info := range infos {
			params := strings.Join(info.Params, ",")
			if params == "" {
				params = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, params, info.Description)
		}
		return tw.Flush()

	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)

	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()

	default:
		return usageError(fmt.Errorf("unknown output format %q: must be one of text, json, yaml", format))
	}
}
