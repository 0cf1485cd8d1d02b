// Command sandpile runs a five-dimensional sandpile, recording every
// generation to the run log and rendering the final field.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/hypergrid/internal/config"
	"github.com/banshee-data/hypergrid/internal/grid"
	"github.com/banshee-data/hypergrid/internal/monitoring"
	"github.com/banshee-data/hypergrid/internal/render"
	"github.com/banshee-data/hypergrid/internal/runlog"
	"github.com/banshee-data/hypergrid/internal/version"
)

var (
	configFile  = flag.String("config", "", "Path to a JSON run config (defaults apply when empty)")
	outDir      = flag.String("out", "", "Output directory, overrides output_dir")
	dbPath      = flag.String("db", "", "Run log database, overrides db_path")
	generations = flag.Int("generations", -1, "Generation budget, overrides generations")
	restoreFile = flag.String("restore", "", "Resume from a backup file instead of a fresh pile")
	debug       = flag.Bool("debug", false, "Log every generation")
	showVersion = flag.Bool("version", false, "Print the version and exit")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println("sandpile", version.String())
		return
	}

	cfg := config.DefaultRunConfig()
	if *configFile != "" {
		loaded, err := config.LoadRunConfig(*configFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	monitoring.SetDebug(cfg.GetDebug())

	res, err := execute(cfg, *restoreFile)
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}
	fmt.Printf("run %s: %s after %d generations\n", res.RunID, res.Status, res.Generations)
}

func applyFlags(cfg *config.RunConfig) {
	if *outDir != "" {
		cfg.OutputDir = outDir
	}
	if *dbPath != "" {
		cfg.DBPath = dbPath
	}
	if *generations >= 0 {
		cfg.Generations = generations
	}
	if *debug {
		cfg.Debug = debug
	}
}

// execute opens the run log and runs the pile with the configured value type.
func execute(cfg *config.RunConfig, restore string) (result, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.GetDBPath()), 0o755); err != nil {
		return result{}, err
	}
	db, err := runlog.Open(cfg.GetDBPath())
	if err != nil {
		return result{}, fmt.Errorf("failed to open run log: %w", err)
	}
	defer db.Close()

	switch cfg.GetValueType() {
	case config.ValueInt:
		return simulate(cfg, grid.Ints, render.Int32, db, restore)
	case config.ValueLong:
		return simulate(cfg, grid.Longs, render.Int64, db, restore)
	case config.ValueNumeric:
		return simulate(cfg, grid.Numerics, render.BigInt, db, restore)
	default:
		return result{}, fmt.Errorf("unknown value type %q", cfg.GetValueType())
	}
}

func simulate[T any](cfg *config.RunConfig, arith grid.Arithmetic[T], toFloat func(T) float64, db *runlog.DB, restore string) (result, error) {
	r, err := newRunner(cfg, arith, toFloat, db, restore)
	if err != nil {
		return result{}, err
	}
	res, err := r.run(cfg.GetGenerations())
	if err != nil {
		return res, err
	}
	if !cfg.GetRender() {
		return res, nil
	}
	files, err := r.renderPlanes()
	if err != nil {
		return res, fmt.Errorf("failed to render: %w", err)
	}
	for _, f := range files {
		monitoring.Logf("wrote %s", f)
	}
	file, err := r.writeReport()
	if err != nil {
		return res, fmt.Errorf("failed to write report: %w", err)
	}
	monitoring.Logf("wrote %s", file)
	return res, nil
}
