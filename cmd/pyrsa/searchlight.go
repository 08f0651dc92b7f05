package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ut-382v-ashkan-and-david/pyrsa"
	"github.com/ut-382v-ashkan-and-david/pyrsa/rdm"
	"github.com/ut-382v-ashkan-and-david/pyrsa/snapshot"
	"github.com/ut-382v-ashkan-and-david/pyrsa/volume"
)

func newSearchlightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "searchlight",
		Short: "Scan a mask and compute one RDM per searchlight center",
		RunE:  runSearchlight,
	}

	cmd.Flags().String("mask", "", "3D .npy mask volume (nonzero = included)")
	cmd.Flags().String("data", "", "2D .npy observation matrix (observations x voxels)")
	cmd.Flags().String("events", "", "1D .npy condition labels, one per observation")
	cmd.Flags().String("out", "rdms.prsa", "output snapshot path")
	cmd.Flags().Float64("radius", 2, "searchlight radius in voxels")
	cmd.Flags().Float64("threshold", 1.0, "minimum mask coverage ratio in [0, 1]")
	cmd.Flags().String("method", "correlation", "dissimilarity method (euclidean|correlation|mahalanobis|crossnobis)")
	cmd.Flags().Int("chunks", rdm.DefaultChunks, "number of center batches")
	cmd.Flags().Int("workers", 1, "parallel workers for RDM calculation")
	cmd.Flags().String("compression", snapshot.CompressionLZ4, "snapshot compression (none|lz4|zstd)")
	_ = cmd.MarkFlagRequired("mask")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("events")
	_ = viper.BindPFlags(cmd.Flags())

	return cmd
}

func runSearchlight(cmd *cobra.Command, _ []string) error {
	color.NoColor = color.NoColor || viper.GetBool("no-color")
	quiet := viper.GetBool("quiet")

	method, err := rdm.ParseMethod(viper.GetString("method"))
	if err != nil {
		return err
	}

	maskData, maskShape, err := readNpy(viper.GetString("mask"), 3)
	if err != nil {
		return err
	}
	mask, err := volume.NewMask([3]int{maskShape[0], maskShape[1], maskShape[2]}, maskData)
	if err != nil {
		return err
	}
	data, dataShape, err := readNpy(viper.GetString("data"), 2)
	if err != nil {
		return err
	}
	events, _, err := readNpy(viper.GetString("events"), 1)
	if err != nil {
		return err
	}
	if dataShape[1] != mask.Len() {
		return fmt.Errorf("data has %d voxel columns but mask volume holds %d voxels", dataShape[1], mask.Len())
	}

	opts := []pyrsa.Option{
		pyrsa.WithChunks(viper.GetInt("chunks")),
		pyrsa.WithWorkers(viper.GetInt("workers")),
	}
	if !quiet {
		opts = append(opts, pyrsa.WithProgress(func(stage string, done, total int) {
			fmt.Fprintf(os.Stderr, "\r%s %d/%d", stage, done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}))
	}

	p, err := pyrsa.New(viper.GetFloat64("radius"), viper.GetFloat64("threshold"), method, opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := p.Run(cmd.Context(), mask, data, dataShape[1], events, nil, nil)
	if err != nil {
		return err
	}

	out := viper.GetString("out")
	if err := snapshot.SaveFile(out, res.RDMs, snapshot.WithCompression(viper.GetString("compression"))); err != nil {
		return err
	}

	if !quiet {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s %d searchlights, %d pairwise columns in %s -> %s\n",
			green("✔"), res.RDMs.NRDM, res.RDMs.NPairs(), time.Since(start).Round(time.Millisecond), out)
	}
	return nil
}
