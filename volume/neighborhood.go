package volume

import "math"

// Neighbors returns every in-bounds voxel coordinate whose Euclidean distance
// to center is strictly less than radius, for a volume of the given dims.
//
// Candidates are pruned per axis to the open interval
// (center-radius, center+radius) clipped at the array edges, then the exact
// sphere test is applied to the surviving grid. The box prune does a little
// redundant distance work at the sphere corners but avoids scanning the full
// volume for every center.
//
// An out-of-bounds center is not an error; the axis clipping simply yields a
// partial (possibly empty) neighborhood.
func Neighbors(dims [3]int, center [3]int, radius float64) [][3]int {
	var lo, hi [3]int
	for a := 0; a < 3; a++ {
		lo[a] = center[a] - int(math.Ceil(radius)) + 1
		if lo[a] < 0 {
			lo[a] = 0
		}
		hi[a] = center[a] + int(math.Ceil(radius)) - 1
		if hi[a] > dims[a]-1 {
			hi[a] = dims[a] - 1
		}
	}

	var coords [][3]int
	for x := lo[0]; x <= hi[0]; x++ {
		dx := float64(x - center[0])
		for y := lo[1]; y <= hi[1]; y++ {
			dy := float64(y - center[1])
			for z := lo[2]; z <= hi[2]; z++ {
				dz := float64(z - center[2])
				if math.Sqrt(dx*dx+dy*dy+dz*dz) < radius {
					coords = append(coords, [3]int{x, y, z})
				}
			}
		}
	}
	return coords
}

// SphereSize returns the number of integer offsets strictly within radius of
// the origin: the voxel count of a full, unclipped searchlight sphere. It is
// the coverage-ratio denominator used by Generate.
func SphereSize(radius float64) int {
	r := int(math.Ceil(radius)) - 1
	n := 0
	for x := -r; x <= r; x++ {
		for y := -r; y <= r; y++ {
			for z := -r; z <= r; z++ {
				if math.Sqrt(float64(x*x+y*y+z*z)) < radius {
					n++
				}
			}
		}
	}
	return n
}
