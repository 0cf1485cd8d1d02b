// Package testutil provides shared test helpers for models and runs.
package testutil

import (
	"testing"

	"github.com/banshee-data/hypergrid/internal/grid"
	"github.com/banshee-data/hypergrid/internal/monitoring"
)

// Ptr returns a pointer to v, for filling optional config fields.
func Ptr[T any](v T) *T { return &v }

// RunQuiet mutes the lifecycle logger and runs the package's tests. Call it
// from TestMain.
func RunQuiet(m *testing.M) int {
	monitoring.SetLogger(nil)
	return m.Run()
}

// Step advances m n times and returns whether the last step changed it.
func Step[T any](t testing.TB, m grid.Model[T], n int) bool {
	t.Helper()
	changed := false
	for i := 0; i < n; i++ {
		var err error
		if changed, err = m.Step(); err != nil {
			t.Fatalf("step %d of %s: %v", i+1, m.SubfolderPath(), err)
		}
	}
	return changed
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
