package main

import (
	"fmt"
	"os"

	"github.com/sbinet/npyio"
)

// readNpy loads a float64 .npy file and returns its data and shape.
func readNpy(path string, wantDims int) ([]float64, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	shape := r.Header.Descr.Shape
	if len(shape) != wantDims {
		return nil, nil, fmt.Errorf("%s: expected a %d-dimensional array, got shape %v", path, wantDims, shape)
	}

	var data []float64
	if err := r.Read(&data); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, shape, nil
}
