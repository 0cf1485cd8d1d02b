package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRunConfig(t *testing.T) {
	cfg := DefaultRunConfig()

	if cfg.Grains == nil || *cfg.Grains != 2000 {
		t.Errorf("Expected Grains 2000, got %v", cfg.Grains)
	}
	if cfg.ValueType == nil || *cfg.ValueType != ValueLong {
		t.Errorf("Expected ValueType %q, got %v", ValueLong, cfg.ValueType)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestGettersMatchDefaults(t *testing.T) {
	empty := EmptyRunConfig()
	def := DefaultRunConfig()

	assert.Equal(t, def.GetGrains(), empty.GetGrains())
	assert.Equal(t, def.GetValueType(), empty.GetValueType())
	assert.Equal(t, def.GetGenerations(), empty.GetGenerations())
	assert.Equal(t, def.GetTimeLimit(), empty.GetTimeLimit())
	assert.Equal(t, def.GetMemoryBudgetBytes(), empty.GetMemoryBudgetBytes())
	assert.Equal(t, def.GetBackupInterval(), empty.GetBackupInterval())
	assert.Equal(t, def.GetBackupKeep(), empty.GetBackupKeep())
	assert.Equal(t, def.GetDeltaLag(), empty.GetDeltaLag())
	assert.Equal(t, def.GetOutputDir(), empty.GetOutputDir())
	assert.Equal(t, def.GetDBPath(), empty.GetDBPath())
	assert.Equal(t, def.GetRender(), empty.GetRender())
	assert.Equal(t, def.GetDebug(), empty.GetDebug())
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	def := DefaultRunConfig()

	// The defaults file and the Go defaults must agree.
	assert.Equal(t, def, cfg)
	assert.Equal(t, 10*time.Minute, cfg.GetTimeLimit())
	assert.Equal(t, filepath.Join("out", "runs.db"), cfg.GetDBPath())
}

func TestLoadRunConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "run.json")

	testJSON := `{
  "grains": 5000,
  "value_type": "numeric",
  "time_limit": "",
  "delta_lag": 2,
  "output_dir": "/tmp/pile",
  "db_path": "/tmp/history.db"
}`
	require.NoError(t, os.WriteFile(configPath, []byte(testJSON), 0o644))

	cfg, err := LoadRunConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), cfg.GetGrains())
	assert.Equal(t, ValueNumeric, cfg.GetValueType())
	assert.Equal(t, time.Duration(0), cfg.GetTimeLimit())
	assert.Equal(t, 2, cfg.GetDeltaLag())
	assert.Equal(t, "/tmp/pile", cfg.GetOutputDir())
	assert.Equal(t, "/tmp/history.db", cfg.GetDBPath())
	// Omitted fields keep their defaults.
	assert.Equal(t, 200, cfg.GetGenerations())
	assert.True(t, cfg.GetRender())
}

func TestLoadRunConfig_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name, body string) string {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"wrong extension", write("run.yaml", "{}"), ".json extension"},
		{"missing file", filepath.Join(tmpDir, "nope.json"), "failed to stat"},
		{"bad json", write("bad.json", "{"), "failed to parse"},
		{"negative grains", write("neg.json", `{"grains": -1}`), "grains must be non-negative"},
		{"unknown value type", write("vt.json", `{"value_type": "float"}`), "value_type must be one of"},
		{"int overflow", write("ovf.json", `{"value_type": "int", "grains": 3000000000}`), "overflow"},
		{"bad time limit", write("tl.json", `{"time_limit": "soon"}`), "invalid time_limit"},
		{"zero budget", write("mb.json", `{"memory_budget_bytes": 0}`), "memory_budget_bytes"},
		{"bad lag", write("lag.json", `{"delta_lag": 3}`), "delta_lag"},
		{"keep none", write("keep.json", `{"backup_keep": 0}`), "backup_keep"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRunConfig(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRunConfig_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.json")
	body := `{"output_dir": "` + strings.Repeat("a", 1<<20) + `"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := LoadRunConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}
