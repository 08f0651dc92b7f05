// Package volume provides the voxel-space geometry for searchlight analysis:
// 3D masks with C-order raveling, spherical neighborhood lookup, and the
// generator that scans a mask for valid searchlight centers.
//
// All coordinates are integer voxel indices. A raveled index is the single
// integer encoding of an (x, y, z) coordinate under C-order flattening, used
// as the compact interchange form throughout the toolkit; 3D coordinates only
// appear as internal intermediates.
package volume
