// Package pyrsa provides representational similarity analysis (RSA) with a
// volumetric searchlight pipeline: spherical voxel neighborhoods are scanned
// from a 3D mask, one representational dissimilarity matrix (RDM) is
// computed per neighborhood from the observation data, and candidate models
// are scored against every local RDM.
//
// # Quick start
//
//	mask, _ := volume.NewBoolMask(dims, inBrain)
//
//	p, _ := pyrsa.New(2.0, 0.7, rdm.MethodCorrelation)
//	res, _ := p.Run(ctx, mask, data, mask.Len(), events,
//	    []model.Model{m}, model.EvalFixed(rdm.CompareSpearman))
//
//	scores, _ := res.ScoreVolume(0) // flattened per-voxel model fit
//
// The subpackages can also be used directly: volume for mask geometry and
// searchlight generation, rdm for RDM calculation and comparison, model for
// evaluation, dataset for the measurement container, snapshot for
// persistence.
package pyrsa
