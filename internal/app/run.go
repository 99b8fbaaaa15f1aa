package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/sweepgrid/internal/baseline"
	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/specialistvlad/sweepgrid/internal/jobscript"
	"github.com/specialistvlad/sweepgrid/internal/sweep"
)

// Run loads every sweep under the configured path and generates them in
// order. All baselines and templates are loaded before the first file is
// written, so a bad input aborts the run with nothing on disk.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loader.Load(ctx, a.config.SweepPath)
	if err != nil {
		return fmt.Errorf("failed to load sweeps: %w", err)
	}
	if len(model.Sweeps) == 0 {
		a.logger.Warn("No sweeps found, nothing to generate.", "path", a.config.SweepPath)
		return nil
	}

	plans := make([]*sweep.Plan, 0, len(model.Sweeps))
	for _, s := range model.Sweeps {
		base, err := baseline.Load(s.BaselinePath)
		if err != nil {
			return fmt.Errorf("failed to load baseline for sweep %q: %w", s.Name, err)
		}
		tmpl, err := jobscript.Load(s.TemplatePath)
		if err != nil {
			return fmt.Errorf("failed to load job script template for sweep %q: %w", s.Name, err)
		}
		dir := filepath.Join(a.config.OutputRoot, s.OutputDir)
		plans = append(plans, sweep.NewPlan(s, base, tmpl, dir))
	}
	a.logger.Debug("All sweep inputs loaded.", "sweeps", len(plans))

	gen := sweep.NewGenerator(a.sink)
	next := a.config.BaseJobID
	for _, plan := range plans {
		start := plan.Sweep.BaseJobID
		if a.config.BaseJobID != UseSweepBaseJobID {
			start = next
		}

		sweepCtx := ctxlog.With(ctx, "sweep", plan.Sweep.Name)
		// I/O failures are returned as-is so callers see the *fs.PathError.
		next, err = gen.Generate(sweepCtx, plan, start)
		if err != nil {
			return err
		}
		a.logger.Info("Sweep generated.",
			"sweep", plan.Sweep.Name,
			"dir", plan.Dir,
			"jobs", next-start,
			"first_job_id", start,
			"last_job_id", next-1,
		)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
