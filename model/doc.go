// Package model provides representational models and the searchlight
// evaluator that scores them against computed RDM collections.
//
// A model predicts a dissimilarity vector; an evaluation function scores one
// or more models against a single measured RDM. The evaluator maps an
// evaluation function over every searchlight RDM, optionally across a worker
// pool, and always returns results in the RDM collection's row order.
package model
