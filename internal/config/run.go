package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the path to the canonical run defaults file.
const DefaultConfigPath = "config/run.defaults.json"

// Value types a run can simulate with.
const (
	ValueInt     = "int"
	ValueLong    = "long"
	ValueNumeric = "numeric"
)

// RunConfig is the JSON configuration of a simulation run. Omitted fields fall
// back to the defaults returned by the Get* methods, so partial files are safe.
type RunConfig struct {
	Grains      *int64  `json:"grains,omitempty"`
	ValueType   *string `json:"value_type,omitempty"`
	Generations *int    `json:"generations,omitempty"`
	TimeLimit   *string `json:"time_limit,omitempty"` // duration string like "10m"

	// Memory and backup params
	MemoryBudgetBytes *int64 `json:"memory_budget_bytes,omitempty"`
	BackupInterval    *int   `json:"backup_interval,omitempty"` // generations, 0 disables
	BackupKeep        *int   `json:"backup_keep,omitempty"`

	DeltaLag  *int    `json:"delta_lag,omitempty"` // 0 disables
	OutputDir *string `json:"output_dir,omitempty"`
	DBPath    *string `json:"db_path,omitempty"`
	Render    *bool   `json:"render,omitempty"`
	Debug     *bool   `json:"debug,omitempty"`
}

func ptrInt(v int) *int          { return &v }
func ptrInt64(v int64) *int64    { return &v }
func ptrString(v string) *string { return &v }
func ptrBool(v bool) *bool       { return &v }

// EmptyRunConfig returns a RunConfig with every field unset.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// LoadRunConfig loads a RunConfig from a JSON file with a .json extension
// under 1MB and validates it.
func LoadRunConfig(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRunConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath from the current directory or
// one of its parents. It panics when the file cannot be found, and is intended
// for test setup.
func MustLoadDefaultConfig() *RunConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/grid/view/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadRunConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the values that are set.
func (c *RunConfig) Validate() error {
	if c.Grains != nil && *c.Grains < 0 {
		return fmt.Errorf("grains must be non-negative, got %d", *c.Grains)
	}
	if c.ValueType != nil {
		switch *c.ValueType {
		case ValueInt, ValueLong, ValueNumeric:
		default:
			return fmt.Errorf("value_type must be one of %q, %q, %q, got %q",
				ValueInt, ValueLong, ValueNumeric, *c.ValueType)
		}
	}
	if c.Grains != nil && c.ValueType != nil && *c.ValueType == ValueInt && *c.Grains > 1<<31-1 {
		return fmt.Errorf("grains %d overflow value_type %q", *c.Grains, ValueInt)
	}
	if c.Generations != nil && *c.Generations < 0 {
		return fmt.Errorf("generations must be non-negative, got %d", *c.Generations)
	}
	if c.TimeLimit != nil && *c.TimeLimit != "" {
		if _, err := time.ParseDuration(*c.TimeLimit); err != nil {
			return fmt.Errorf("invalid time_limit '%s': %w", *c.TimeLimit, err)
		}
	}
	if c.MemoryBudgetBytes != nil && *c.MemoryBudgetBytes <= 0 {
		return fmt.Errorf("memory_budget_bytes must be positive, got %d", *c.MemoryBudgetBytes)
	}
	if c.BackupInterval != nil && *c.BackupInterval < 0 {
		return fmt.Errorf("backup_interval must be non-negative, got %d", *c.BackupInterval)
	}
	if c.BackupKeep != nil && *c.BackupKeep < 1 {
		return fmt.Errorf("backup_keep must be at least 1, got %d", *c.BackupKeep)
	}
	if c.DeltaLag != nil && (*c.DeltaLag < 0 || *c.DeltaLag > 2) {
		return fmt.Errorf("delta_lag must be 0, 1 or 2, got %d", *c.DeltaLag)
	}
	return nil
}

// GetGrains returns the initial pile size or the default.
func (c *RunConfig) GetGrains() int64 {
	if c.Grains == nil {
		return 2000
	}
	return *c.Grains
}

// GetValueType returns the value type or the default.
func (c *RunConfig) GetValueType() string {
	if c.ValueType == nil || *c.ValueType == "" {
		return ValueLong
	}
	return *c.ValueType
}

// GetGenerations returns the generation budget or the default.
func (c *RunConfig) GetGenerations() int {
	if c.Generations == nil {
		return 200
	}
	return *c.Generations
}

// GetTimeLimit parses and returns TimeLimit. An empty string disables the
// limit and returns zero.
func (c *RunConfig) GetTimeLimit() time.Duration {
	if c.TimeLimit == nil {
		return 10 * time.Minute
	}
	if *c.TimeLimit == "" {
		return 0
	}
	d, err := time.ParseDuration(*c.TimeLimit)
	if err != nil {
		return 0
	}
	return d
}

// GetMemoryBudgetBytes returns the live-grid memory budget or the default.
func (c *RunConfig) GetMemoryBudgetBytes() int64 {
	if c.MemoryBudgetBytes == nil {
		return 256 << 20
	}
	return *c.MemoryBudgetBytes
}

// GetBackupInterval returns the periodic backup interval in generations.
func (c *RunConfig) GetBackupInterval() int {
	if c.BackupInterval == nil {
		return 0
	}
	return *c.BackupInterval
}

// GetBackupKeep returns how many backups are kept on disk.
func (c *RunConfig) GetBackupKeep() int {
	if c.BackupKeep == nil {
		return 3
	}
	return *c.BackupKeep
}

// GetDeltaLag returns the delta view lag, 0 when disabled.
func (c *RunConfig) GetDeltaLag() int {
	if c.DeltaLag == nil {
		return 0
	}
	return *c.DeltaLag
}

// GetOutputDir returns the directory backups and renders are written to.
func (c *RunConfig) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return "out"
	}
	return *c.OutputDir
}

// GetDBPath returns the run log database path, by default runs.db inside the
// output directory.
func (c *RunConfig) GetDBPath() string {
	if c.DBPath == nil || *c.DBPath == "" {
		return filepath.Join(c.GetOutputDir(), "runs.db")
	}
	return *c.DBPath
}

// GetRender reports whether heatmaps and the report are rendered.
func (c *RunConfig) GetRender() bool {
	if c.Render == nil {
		return true
	}
	return *c.Render
}

// GetDebug reports whether debug logging is enabled.
func (c *RunConfig) GetDebug() bool {
	if c.Debug == nil {
		return false
	}
	return *c.Debug
}

// DefaultRunConfig returns a config with every field set to its default.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Grains:            ptrInt64(2000),
		ValueType:         ptrString(ValueLong),
		Generations:       ptrInt(200),
		TimeLimit:         ptrString("10m"),
		MemoryBudgetBytes: ptrInt64(256 << 20),
		BackupInterval:    ptrInt(0),
		BackupKeep:        ptrInt(3),
		DeltaLag:          ptrInt(0),
		OutputDir:         ptrString("out"),
		Render:            ptrBool(true),
		Debug:             ptrBool(false),
	}
}
