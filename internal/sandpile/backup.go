package sandpile

import (
	"fmt"
	"path/filepath"

	"github.com/banshee-data/hypergrid/internal/fsutil"
	"github.com/banshee-data/hypergrid/internal/grid"
	"github.com/banshee-data/hypergrid/internal/grid/dense"
	"github.com/banshee-data/hypergrid/internal/monitoring"
)

// BackupExt is the extension of backup files.
const BackupExt = ".grid.gz"

// BackupFile returns the file BackUp(path, name) writes.
func BackupFile(path, name string) string {
	return filepath.Join(path, name+BackupExt)
}

// BackUp writes the current generation to path/name.grid.gz, replacing any
// earlier backup of the same name.
func (s *Sandpile[T]) BackUp(path, name string) error {
	if name == "" {
		return fmt.Errorf("back up %s: empty backup name: %w", s.name, grid.ErrIllegalArgument)
	}
	s.cur.Retag(dense.WithName(s.name), dense.WithSubfolder(s.subfolder), dense.WithGeneration(s.generation))
	blob, err := dense.EncodeIsotropic5(s.cur)
	if err != nil {
		return fmt.Errorf("back up %s at generation %d: %w", s.name, s.generation, err)
	}
	file := BackupFile(path, name)
	if err := fsutil.WriteFileAtomic(s.fsys, file, blob, 0o644); err != nil {
		return fmt.Errorf("write backup %s: %w", file, err)
	}
	monitoring.Logf("sandpile %s: backed up generation %d to %s (%d bytes)", s.name, s.generation, file, len(blob))
	return nil
}

// Restore reads a backup written by BackUp and resumes the pile from it.
// Name and subfolder come from the backup unless overridden by opts.
func Restore[T any](fsys fsutil.FileSystem, file string, arith grid.Arithmetic[T], opts ...Option) (*Sandpile[T], error) {
	blob, err := fsys.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read backup %s: %w", file, err)
	}
	cur, err := dense.DecodeIsotropic5[T](blob)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", file, err)
	}
	st := newSettings(append([]Option{
		WithName(cur.Name()),
		WithSubfolder(cur.SubfolderPath()),
		WithFileSystem(fsys),
	}, opts...))
	s, err := assemble(st, arith, cur, cur.Generation())
	if err != nil {
		return nil, err
	}
	monitoring.Logf("sandpile %s: restored generation %d from %s", s.name, s.generation, file)
	return s, nil
}
