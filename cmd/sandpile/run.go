package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/banshee-data/hypergrid/internal/config"
	"github.com/banshee-data/hypergrid/internal/fsutil"
	"github.com/banshee-data/hypergrid/internal/grid"
	"github.com/banshee-data/hypergrid/internal/grid/history"
	"github.com/banshee-data/hypergrid/internal/grid/symmetry"
	"github.com/banshee-data/hypergrid/internal/grid/view"
	"github.com/banshee-data/hypergrid/internal/monitoring"
	"github.com/banshee-data/hypergrid/internal/render"
	"github.com/banshee-data/hypergrid/internal/report"
	"github.com/banshee-data/hypergrid/internal/runlog"
	"github.com/banshee-data/hypergrid/internal/sandpile"
	"github.com/banshee-data/hypergrid/internal/security"
	"github.com/banshee-data/hypergrid/internal/timeutil"
	"github.com/banshee-data/hypergrid/internal/version"
)

// Backup reasons recorded in the run log.
const (
	reasonInterval = "interval"
	reasonBudget   = "memory_budget"
	reasonFinal    = "final"
)

// runner steps one pile and records what happens to it.
type runner[T any] struct {
	cfg     *config.RunConfig
	arith   grid.Arithmetic[T]
	toFloat func(T) float64
	fsys    fsutil.FileSystem
	db      *runlog.DB
	clock   timeutil.Clock

	pile       *sandpile.Sandpile[T]
	delta      *history.Delta[T]
	runID      string
	lastBackup int64
}

// result summarises a finished run.
type result struct {
	RunID       string
	Status      string
	Generations int64
	Backups     []string
}

func newRunner[T any](cfg *config.RunConfig, arith grid.Arithmetic[T], toFloat func(T) float64, db *runlog.DB, restore string) (*runner[T], error) {
	r := &runner[T]{cfg: cfg, arith: arith, toFloat: toFloat, fsys: fsutil.OSFileSystem{}, db: db, clock: timeutil.RealClock{}, lastBackup: -1}
	var err error
	if restore != "" {
		r.pile, err = sandpile.Restore(r.fsys, restore, arith)
	} else {
		r.pile, err = sandpile.New(arith, cfg.GetGrains(), sandpile.WithName(runName(cfg)))
	}
	if err != nil {
		return nil, err
	}
	if lag := cfg.GetDeltaLag(); lag > 0 {
		if r.delta, err = history.NewDelta[T](r.pile, arith, lag); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func runName(cfg *config.RunConfig) string {
	return fmt.Sprintf("sandpile_%d", cfg.GetGrains())
}

// step advances the pile, through the delta view when one is configured so
// that it retains the generations it needs.
func (r *runner[T]) step() (bool, error) {
	if r.delta != nil {
		return r.delta.Step()
	}
	return r.pile.Step()
}

// backupDir is keyed by run so that pruning never touches the backups of
// another run of the same pile, such as the one a restore started from.
func (r *runner[T]) backupDir() (string, error) {
	return security.ArtifactPath(r.cfg.GetOutputDir(), "backups/"+r.pile.SubfolderPath()+"/"+r.runID, "")
}

// backUp writes the current generation and prunes the oldest backups beyond
// the configured keep count. Zero-padded names keep the listing in
// generation order.
func (r *runner[T]) backUp(reason string) (string, error) {
	dir, err := r.backupDir()
	if err != nil {
		return "", err
	}
	gen := r.pile.Generation()
	name := fmt.Sprintf("gen-%08d", gen)
	if err := r.pile.BackUp(dir, name); err != nil {
		return "", err
	}
	r.lastBackup = gen
	file := sandpile.BackupFile(dir, name)
	if err := r.db.RecordBackup(r.runID, gen, file, reason); err != nil {
		return "", err
	}

	names, err := r.fsys.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var backups []string
	for _, n := range names {
		if strings.HasSuffix(n, sandpile.BackupExt) {
			backups = append(backups, n)
		}
	}
	for len(backups) > r.cfg.GetBackupKeep() {
		old := filepath.Join(dir, backups[0])
		if err := r.fsys.Remove(old); err != nil {
			return "", fmt.Errorf("prune backup %s: %w", old, err)
		}
		monitoring.Debugf("pruned backup %s", old)
		backups = backups[1:]
	}
	return file, nil
}

// overBudget reports whether growing the pile on the next step would take it
// past the memory budget.
func (r *runner[T]) overBudget() (bool, error) {
	if !r.pile.Hot() {
		return false, nil
	}
	grown, err := r.pile.GrownFootprintBytes()
	if err != nil {
		return false, err
	}
	return grown > r.cfg.GetMemoryBudgetBytes(), nil
}

func (r *runner[T]) stat(changed bool, elapsed time.Duration) (runlog.GenerationStat, error) {
	section := r.pile.AsymmetricSection()
	lo, hi, _ := grid.MinMax(section, r.arith)
	footprint, err := r.pile.FootprintBytes()
	if err != nil {
		return runlog.GenerationStat{}, err
	}
	return runlog.GenerationStat{
		Generation:     r.pile.Generation(),
		Changed:        changed,
		Side:           r.pile.Side(),
		Total:          fmt.Sprint(symmetry.Total[T](r.pile, r.arith)),
		Min:            fmt.Sprint(lo),
		Max:            fmt.Sprint(hi),
		FootprintBytes: footprint,
		Elapsed:        elapsed,
	}, nil
}

// run steps the pile until the generation budget is spent, the pile settles,
// the time limit passes or the next growth would exceed the memory budget.
func (r *runner[T]) run(generations int) (res result, err error) {
	r.runID, err = r.db.StartRun(r.pile.Name(), r.cfg.GetValueType(), fmt.Sprint(r.cfg.GetGrains()))
	if err != nil {
		return result{}, err
	}
	res.RunID = r.runID
	res.Status = runlog.StatusFinished
	defer func() {
		if err != nil {
			res.Status = runlog.StatusFailed
		}
		res.Generations = r.pile.Generation()
		if ferr := r.db.FinishRun(r.runID, res.Status, res.Generations); ferr != nil && err == nil {
			err = ferr
		}
	}()

	budget := timeutil.NewBudget(r.clock, r.cfg.GetTimeLimit())
	interval := r.cfg.GetBackupInterval()
	monitoring.Logf("run %s: %s with %d grains as %s, version %s", r.runID, r.pile.Name(), r.cfg.GetGrains(), r.cfg.GetValueType(), version.String())

	for i := 0; i < generations; i++ {
		if budget.Exceeded() {
			res.Status = runlog.StatusTimedOut
			break
		}
		over, err := r.overBudget()
		if err != nil {
			return res, err
		}
		if over {
			file, err := r.backUp(reasonBudget)
			if err != nil {
				return res, err
			}
			res.Backups = append(res.Backups, file)
			res.Status = runlog.StatusOverBudget
			monitoring.Logf("run %s: side %d would exceed memory budget of %d bytes", r.runID, r.pile.Side()+1, r.cfg.GetMemoryBudgetBytes())
			break
		}

		t0 := r.clock.Now()
		changed, err := r.step()
		if err != nil {
			return res, err
		}
		s, err := r.stat(changed, r.clock.Since(t0))
		if err != nil {
			return res, err
		}
		if err := r.db.RecordGeneration(r.runID, s); err != nil {
			return res, err
		}
		monitoring.Debugf("generation %d: side=%d total=%s max=%s changed=%t", s.Generation, s.Side, s.Total, s.Max, s.Changed)

		if interval > 0 && s.Generation%int64(interval) == 0 {
			file, err := r.backUp(reasonInterval)
			if err != nil {
				return res, err
			}
			res.Backups = append(res.Backups, file)
		}
		if !changed {
			res.Status = runlog.StatusStable
			break
		}
	}

	if r.lastBackup != r.pile.Generation() {
		file, err := r.backUp(reasonFinal)
		if err != nil {
			return res, err
		}
		res.Backups = append(res.Backups, file)
	}
	monitoring.Logf("run %s: %s after %d generations", r.runID, res.Status, r.pile.Generation())
	return res, nil
}

// planes returns the rank-2 views rendered at the end of a run: the y-z plane
// through the origin, and the v=w diagonal plane at x=y=0.
func planes[T any](m grid.Model[T]) ([]grid.Model[T], error) {
	var out []grid.Model[T]

	var axial grid.Model[T] = m
	for axial.Rank() > 2 {
		cs, err := view.NewCrossSection(axial, 0, 0)
		if err != nil {
			return nil, err
		}
		axial = cs
	}
	out = append(out, axial)

	d, err := view.NewDiagonalCrossSection(m, grid.V, grid.W, 1, 0)
	if err != nil {
		return nil, err
	}
	var diag grid.Model[T] = d
	for diag.Rank() > 2 {
		cs, err := view.NewCrossSection(diag, 1, 0)
		if err != nil {
			return nil, err
		}
		diag = cs
	}
	return append(out, diag), nil
}

func (r *runner[T]) renderPlanes() ([]string, error) {
	type target struct {
		m         grid.Model[T]
		diverging bool
	}
	targets := []target{{m: r.pile}}
	if r.delta != nil {
		targets = append(targets, target{m: r.delta, diverging: true})
	}

	var files []string
	for _, t := range targets {
		views, err := planes(t.m)
		if err != nil {
			return nil, err
		}
		for _, v := range views {
			file, err := security.ArtifactPath(r.cfg.GetOutputDir(), v.SubfolderPath(), ".png")
			if err != nil {
				return nil, err
			}
			title := fmt.Sprintf("%s generation %d", v.SubfolderPath(), v.Generation())
			err = render.Heatmap(v, r.toFloat, file, render.Options{Title: title, Diverging: t.diverging})
			if errors.Is(err, grid.ErrEmptyShape) {
				continue
			}
			if err != nil {
				return nil, err
			}
			files = append(files, file)
		}
	}
	return files, nil
}

// writeReport renders the generation chart of the run and logs its summary.
func (r *runner[T]) writeReport() (string, error) {
	stats, err := r.db.Generations(r.runID)
	if err != nil {
		return "", err
	}
	sum, err := report.Summarize(stats)
	if err != nil {
		return "", err
	}
	monitoring.Logf("run %s: %d generations, total mean %.1f sd %.1f, values %g..%g, final side %d, peak footprint %d bytes",
		r.runID, sum.Generations, sum.MeanTotal, sum.StdDevTotal, sum.MinValue, sum.MaxValue, sum.FinalSide, sum.PeakFootprint)

	file, err := security.ArtifactPath(r.cfg.GetOutputDir(), r.pile.SubfolderPath()+"/report", ".html")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := report.WriteGenerationChart(&buf, r.pile.Name(), stats); err != nil {
		return "", err
	}
	if err := fsutil.WriteFileAtomic(r.fsys, file, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return file, nil
}
