package dense

import "github.com/banshee-data/hypergrid/internal/grid"

// Option configures the metadata of a dense grid.
type Option func(*meta)

// meta carries the naming and generation shared by every dense grid.
type meta struct {
	name       string
	subfolder  string
	generation int64
	labels     []string
}

func newMeta(rank int, opts []Option) meta {
	m := meta{name: "grid", subfolder: "grid"}
	for _, opt := range opts {
		opt(&m)
	}
	if len(m.labels) != rank {
		m.labels = make([]string, rank)
		for i := range m.labels {
			m.labels[i] = grid.DefaultLabel(rank, i)
		}
	}
	return m
}

// WithName sets the model name.
func WithName(name string) Option {
	return func(m *meta) { m.name = name }
}

// WithSubfolder sets the subfolder path used to lay out artifacts.
func WithSubfolder(path string) Option {
	return func(m *meta) { m.subfolder = path }
}

// WithGeneration records the generation the snapshot was taken at.
func WithGeneration(gen int64) Option {
	return func(m *meta) { m.generation = gen }
}

// WithLabels overrides the axis labels. Ignored unless one label per axis is given.
func WithLabels(labels ...string) Option {
	return func(m *meta) { m.labels = append([]string(nil), labels...) }
}

func (m *meta) Name() string              { return m.name }
func (m *meta) SubfolderPath() string     { return m.subfolder }
func (m *meta) Generation() int64         { return m.generation }
func (m *meta) Changed() bool             { return false }
func (m *meta) AxisLabel(axis int) string { return m.labels[axis] }
