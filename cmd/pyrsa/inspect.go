package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ut-382v-ashkan-and-david/pyrsa/snapshot"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <snapshot>",
		Short: "Summarize an RDM snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			r, err := snapshot.LoadFile(args[0])
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header([]string{"Field", "Value"})

			rows := [][]string{
				{"Method", r.Method.String()},
				{"RDMs", strconv.Itoa(r.NRDM)},
				{"Conditions", strconv.Itoa(r.NConds())},
				{"Pairwise columns", strconv.Itoa(r.NPairs())},
				{"Voxel indices", strconv.FormatBool(r.VoxelIndices() != nil)},
			}
			if err := table.Bulk(rows); err != nil {
				return err
			}
			if err := table.Render(); err != nil {
				return fmt.Errorf("render summary: %w", err)
			}
			return nil
		},
	}
}
