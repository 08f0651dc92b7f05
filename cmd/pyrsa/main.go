// Command pyrsa runs searchlight RSA from numpy volumes: it scans a 3D mask
// for searchlight centers, computes one RDM per center from an
// observations-by-voxels data matrix, and writes the collection as a
// snapshot file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
