package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/agenthands/graphlens/internal/core"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available analyzers",
	Long:  `Print every registered analyzer with its id, name and minimum graph size.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print full analyzer metadata as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	registry, err := core.DefaultRegistry()
	if err != nil {
		return err
	}
	infos := core.NewEngine(registry).Analyzers()

	if listJSON {
		return writeJSON(cmd, infos, true)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMIN NODES\tMIN EDGES\tPARAMETERS")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", info.ID, info.Name, max(info.MinNodes, 1), info.MinEdges, len(info.Parameters))
	}
	return w.Flush()
}
