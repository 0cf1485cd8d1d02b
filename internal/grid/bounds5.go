package grid

import "fmt"

// Bounds5 names the layered bound queries of a rank-5 domain: unconditional
// bounds per axis, bounds conditioned on every outer axis (the queries a
// nested traversal needs), and bounds of v given one inner axis (used to
// derive cross-section bounds in the opposite direction).
type Bounds5 struct {
	d Domain
}

// NewBounds5 wraps d, which must have rank 5.
func NewBounds5(d Domain) (Bounds5, error) {
	if d.Rank() != 5 {
		return Bounds5{}, fmt.Errorf("layered 5D bounds over rank %d domain: %w", d.Rank(), ErrIllegalArgument)
	}
	return Bounds5{d: d}, nil
}

func (b Bounds5) MinV() int { return b.d.Min(V, Free()) }
func (b Bounds5) MaxV() int { return b.d.Max(V, Free()) }
func (b Bounds5) MinW() int { return b.d.Min(W, Free()) }
func (b Bounds5) MaxW() int { return b.d.Max(W, Free()) }
func (b Bounds5) MinX() int { return b.d.Min(X, Free()) }
func (b Bounds5) MaxX() int { return b.d.Max(X, Free()) }
func (b Bounds5) MinY() int { return b.d.Min(Y, Free()) }
func (b Bounds5) MaxY() int { return b.d.Max(Y, Free()) }
func (b Bounds5) MinZ() int { return b.d.Min(Z, Free()) }
func (b Bounds5) MaxZ() int { return b.d.Max(Z, Free()) }

func (b Bounds5) MinWAtV(v int) int { return b.d.Min(W, Free().Fix(V, v)) }
func (b Bounds5) MaxWAtV(v int) int { return b.d.Max(W, Free().Fix(V, v)) }

func (b Bounds5) MinXAtVW(v, w int) int { return b.d.Min(X, vw(v, w)) }
func (b Bounds5) MaxXAtVW(v, w int) int { return b.d.Max(X, vw(v, w)) }

func (b Bounds5) MinYAtVWX(v, w, x int) int { return b.d.Min(Y, vw(v, w).Fix(X, x)) }
func (b Bounds5) MaxYAtVWX(v, w, x int) int { return b.d.Max(Y, vw(v, w).Fix(X, x)) }

func (b Bounds5) MinZAtVWXY(v, w, x, y int) int { return b.d.Min(Z, vw(v, w).Fix(X, x).Fix(Y, y)) }
func (b Bounds5) MaxZAtVWXY(v, w, x, y int) int { return b.d.Max(Z, vw(v, w).Fix(X, x).Fix(Y, y)) }

func (b Bounds5) MinVAtW(w int) int { return b.d.Min(V, Free().Fix(W, w)) }
func (b Bounds5) MaxVAtW(w int) int { return b.d.Max(V, Free().Fix(W, w)) }
func (b Bounds5) MinVAtX(x int) int { return b.d.Min(V, Free().Fix(X, x)) }
func (b Bounds5) MaxVAtX(x int) int { return b.d.Max(V, Free().Fix(X, x)) }
func (b Bounds5) MinVAtY(y int) int { return b.d.Min(V, Free().Fix(Y, y)) }
func (b Bounds5) MaxVAtY(y int) int { return b.d.Max(V, Free().Fix(Y, y)) }
func (b Bounds5) MinVAtZ(z int) int { return b.d.Min(V, Free().Fix(Z, z)) }
func (b Bounds5) MaxVAtZ(z int) int { return b.d.Max(V, Free().Fix(Z, z)) }

func vw(v, w int) Partial { return Free().Fix(V, v).Fix(W, w) }
