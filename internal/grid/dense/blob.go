package dense

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"

	"github.com/banshee-data/hypergrid/internal/grid"
)

// isotropicBlob is the gob payload of an Isotropic5 backup.
type isotropicBlob[T any] struct {
	Name       string
	Subfolder  string
	Generation int64
	Data       [][][][][]T
}

// EncodeIsotropic5 serialises g with gob encoding and gzip compression.
func EncodeIsotropic5[T any](g *Isotropic5[T]) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	enc := gob.NewEncoder(gz)
	blob := isotropicBlob[T]{
		Name:       g.name,
		Subfolder:  g.subfolder,
		Generation: g.generation,
		Data:       g.data,
	}
	if err := enc.Encode(blob); err != nil {
		gz.Close()
		return nil, fmt.Errorf("encode isotropic grid %q: %w", g.name, err)
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeIsotropic5 restores a grid written by EncodeIsotropic5, validating
// its triangular shape. The decoded cells are copied into freshly allocated
// storage so the grid's footprint matches FootprintBytes.
func DecodeIsotropic5[T any](blob []byte) (*Isotropic5[T], error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("empty grid blob: %w", grid.ErrIllegalArgument)
	}
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	var payload isotropicBlob[T]
	if err := gob.NewDecoder(gz).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode isotropic grid: %w", err)
	}
	g, err := FromTriangular5(payload.Data,
		WithName(payload.Name),
		WithSubfolder(payload.Subfolder),
		WithGeneration(payload.Generation))
	if err != nil {
		return nil, err
	}
	g.data = cloneTriangular5(g.data, g.side)
	return g, nil
}
