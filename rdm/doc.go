// Package rdm computes and stores representational dissimilarity matrices.
//
// An RDM is the symmetric matrix of pairwise dissimilarities between
// condition-specific response patterns; it is stored as its upper-triangular
// vector of length C(n_conditions, 2), pairs ordered lexicographically with
// the smaller condition index first. A collection holds one such vector per
// source dataset (for searchlight analysis: one per retained center).
package rdm
