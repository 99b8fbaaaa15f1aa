package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/sweepgrid/internal/config"
	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/specialistvlad/sweepgrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL sweep loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths and translates each
// `sweep` block into the model, preserving file and block order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	model := &config.Model{}
	parser := hclparse.NewParser()
	evalCtx := newEvalContext()
	names := make(map[string]string)
	// Sweeps sharing a directory would overwrite each other's job files.
	outputDirs := make(map[string]string)

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Sweeps {
			if prev, dup := names[block.Name]; dup {
				return nil, fmt.Errorf("sweep %q in %s is already defined in %s", block.Name, file, prev)
			}
			names[block.Name] = file

			sweep, err := l.translateSweep(ctx, evalCtx, block, file)
			if err != nil {
				return nil, err
			}
			if err := sweep.Validate(); err != nil {
				return nil, err
			}

			outDir := filepath.Clean(sweep.OutputDir)
			if owner, dup := outputDirs[outDir]; dup {
				return nil, fmt.Errorf("sweep %q in %s writes to output directory %q already used by sweep %q", sweep.Name, file, outDir, owner)
			}
			outputDirs[outDir] = sweep.Name
			model.Sweeps = append(model.Sweeps, sweep)
		}
	}

	logger.Debug("HCL loading complete.", "sweeps", len(model.Sweeps))
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a flat, de-duplicated
// list of all .hcl files found. Unlike directories, an explicitly named file
// that does not exist is an error.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find sweep files in %s: %w", path, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	return allFiles, nil
}

// resolvePath makes a path referenced from a sweep file relative to that
// file's directory. Absolute paths are returned unchanged.
func resolvePath(sweepFile, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(sweepFile), p)
}
