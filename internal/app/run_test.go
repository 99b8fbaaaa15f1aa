package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/sweepgrid/internal/hcl"
	"github.com/specialistvlad/sweepgrid/internal/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const odoursHCL = `
sweep "sweep_random_odours" {
	base_job_id = 5000
	baseline    = "defaults.json"

	overrides = {
		dt        = 1e-6
		t_end     = 2.1
		keep_till = 0.6
		k         = 3
	}

	axis "S" {
		tag    = "S"
		values = [1, 2]
	}
	axis "leak_pg" {
		tag    = "L"
		values = [0.5]
	}
	repeat "seed" {
		count = 1
	}
	subparam "which_odour" {
		tag   = "O"
		count = 2
	}

	job {
		command = "python -u ../run_sisters.py"
		args    = ["--write_every", "1000"]
	}
}
`

// setup writes the given files into a fresh workspace and returns its root
// together with an empty output root.
func setup(t *testing.T, files map[string]string) (string, string) {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root, t.TempDir()
}

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer) {
	t.Helper()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	config, err := NewConfig(cfg)
	require.NoError(t, err)
	logs := &bytes.Buffer{}
	return NewApp(logs, config, hcl.NewLoader()), logs
}

func TestRun_GeneratesSweep(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root, out := setup(t, map[string]string{
		"odours.hcl":    odoursHCL,
		"defaults.json": `{"dt": 0.001, "t_end": 1.0, "n_mitral": 50, "k": 1}`,
	})
	a, logs := newTestApp(t, Config{SweepPath: root, OutputRoot: out, BaseJobID: UseSweepBaseJobID})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	dir := filepath.Join(out, "sweep_random_odours")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 8)

	raw, err := os.ReadFile(filepath.Join(dir, "params5003.json"))
	require.NoError(t, err)
	var params map[string]any
	require.NoError(t, json.Unmarshal(raw, &params))
	assert.Equal(t, map[string]any{
		"S":           float64(2),
		"leak_pg":     0.5,
		"seed":        float64(0),
		"which_odour": float64(1),
		"dt":          1e-6,
		"t_end":       2.1,
		"keep_till":   0.6,
		"k":           float64(3),
		"n_mitral":    float64(50),
	}, params)

	script, err := os.ReadFile(filepath.Join(dir, "job5003.sh"))
	require.NoError(t, err)
	assert.Contains(t, string(script), "#SBATCH --job-name=2S0.5L0O1\n")
	assert.Contains(t, string(script), "python -u ../run_sisters.py params5003.json --write_every 1000\n")

	assert.Equal(t, 4, strings.Count(logs.String(), "Wrote job script."))
	assert.Contains(t, logs.String(), "Sweep generated.")
	assert.Contains(t, logs.String(), "last_job_id=5003")
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	root, out := setup(t, map[string]string{
		"odours.hcl":    odoursHCL,
		"defaults.json": `{}`,
	})
	a, logs := newTestApp(t, Config{SweepPath: root, OutputRoot: out, DryRun: true, BaseJobID: UseSweepBaseJobID})

	err := a.Run(context.Background())

	require.NoError(t, err)
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)

	mem, ok := a.Sink().(*sweep.MemSink)
	require.True(t, ok)
	assert.Len(t, mem.Paths(), 8)
	assert.Contains(t, logs.String(), "dry_run=true")
	assert.Equal(t, 4, strings.Count(logs.String(), "Rendered job script."))
	assert.NotContains(t, logs.String(), "Wrote job script.")
}

func TestRun_BaseJobIDOverrideContinuesAcrossSweeps(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	second := `
sweep "second" {
	base_job_id = 1
	baseline    = "defaults.yaml"
	axis "S" { values = [4, 8, 16] }
	job { command = "./sim" }
}
`
	root, out := setup(t, map[string]string{
		"a.hcl":         odoursHCL,
		"b.hcl":         second,
		"defaults.json": `{}`,
		"defaults.yaml": "dt: 0.5\n",
	})
	a, _ := newTestApp(t, Config{SweepPath: root, OutputRoot: out, BaseJobID: 100})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	for _, name := range []string{"params100.json", "job103.sh"} {
		assert.FileExists(t, filepath.Join(out, "sweep_random_odours", name))
	}
	for _, name := range []string{"params104.json", "job106.sh"} {
		assert.FileExists(t, filepath.Join(out, "second", name))
	}
	assert.NoFileExists(t, filepath.Join(out, "second", "job1.sh"))
}

func TestRun_BadBaselineWritesNothing(t *testing.T) {
	t.Parallel()

	// The first sweep is fine; the second references a missing baseline.
	second := `
sweep "second" {
	baseline = "missing.json"
	axis "S" { values = [1] }
	job { command = "./sim" }
}
`
	root, out := setup(t, map[string]string{
		"a.hcl":         odoursHCL,
		"b.hcl":         second,
		"defaults.json": `{}`,
	})
	a, _ := newTestApp(t, Config{SweepPath: root, OutputRoot: out, BaseJobID: UseSweepBaseJobID})

	err := a.Run(context.Background())

	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), `failed to load baseline for sweep "second"`)
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing is written when an input fails to load")
}

func TestRun_WriteFailureSurfacesPathError(t *testing.T) {
	t.Parallel()

	root, out := setup(t, map[string]string{
		"odours.hcl":    odoursHCL,
		"defaults.json": `{}`,
	})
	// A regular file where the sweep directory should go.
	require.NoError(t, os.WriteFile(filepath.Join(out, "sweep_random_odours"), nil, 0o644))
	a, _ := newTestApp(t, Config{SweepPath: root, OutputRoot: out, BaseJobID: UseSweepBaseJobID})

	err := a.Run(context.Background())

	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
}

func TestRun_NoSweeps(t *testing.T) {
	t.Parallel()

	root, out := setup(t, map[string]string{"empty.hcl": "# nothing here\n"})
	a, logs := newTestApp(t, Config{SweepPath: root, OutputRoot: out, BaseJobID: UseSweepBaseJobID})

	err := a.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "No sweeps found")
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{SweepPath: "s.hcl", BaseJobID: UseSweepBaseJobID})
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutputRoot)

	_, err = NewConfig(Config{SweepPath: "s.hcl", BaseJobID: -2})
	require.Error(t, err)
}
