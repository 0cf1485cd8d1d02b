// Package dense holds array-backed grids that own their values.
//
// Regular stores a hyperrectangle in one flat slice. Isotropic5 stores only
// the asymmetric section of a symmetric 5D field (v >= w >= x >= y >= z >= 0)
// in successively shrinking nested slices, a small fraction of the full
// hypercube. Both are snapshot grids: they do not step or back up, and are
// mutated only by the collaborator that owns them.
package dense
