package testutil

import (
	"testing"

	"github.com/banshee-data/hypergrid/internal/grid"
	"github.com/banshee-data/hypergrid/internal/grid/dense"
)

func TestPtr(t *testing.T) {
	t.Parallel()
	p := Ptr(42)
	if *p != 42 {
		t.Errorf("*Ptr(42) = %d", *p)
	}
	q := Ptr("out")
	if *q != "out" {
		t.Errorf("*Ptr(out) = %q", *q)
	}
}

// counter is a one-cell model whose value counts its steps.
type counter struct {
	*dense.Regular[int64]
	n int64
}

func (c *counter) Generation() int64 { return c.n }
func (c *counter) Changed() bool     { return c.n > 0 }

func (c *counter) Step() (bool, error) {
	c.n++
	c.Set(grid.Coords{}, c.n)
	return c.n < 3, nil
}

func TestStep(t *testing.T) {
	t.Parallel()
	g, err := dense.NewRegular(grid.Coords{0}, int64(0), []int{1})
	AssertNoError(t, err)
	c := &counter{Regular: g}

	if !Step[int64](t, c, 2) {
		t.Error("expected second step to report a change")
	}
	if Step[int64](t, c, 1) {
		t.Error("expected third step to report no change")
	}
	if got := c.ValueAt(grid.Coords{}); got != 3 {
		t.Errorf("value after 3 steps = %d, want 3", got)
	}
	if Step[int64](t, c, 0) {
		t.Error("zero steps should report no change")
	}
}
