// Package grid defines the value-per-coordinate model shared by every grid,
// view and automaton in hypergrid.
//
// A Model is a field of values over an integer coordinate domain of rank 1..5
// at one generation. Domains are generally not hyperrectangles: the legal range
// of an inner axis may depend on the coordinates already chosen for the outer
// axes. Bounds are therefore queried per axis with a Partial carrying whatever
// coordinates are already known, and consumers must ask with the most specific
// Partial they have before calling ValueAt. ValueAt itself never validates.
//
// Key types: Coords, Partial, Domain, Model, SymmetricModel, Iterator.
//
// Concurrency: none. Step mutates shared storage in place, so every reader
// (iterators, aggregates, views chained from the model) must finish before the
// next Step is issued.
package grid
