package sweep

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/sweepgrid/internal/baseline"
	"github.com/specialistvlad/sweepgrid/internal/config"
	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/specialistvlad/sweepgrid/internal/jobscript"
)

// ParamsFileName is the parameter file name for a job identifier.
func ParamsFileName(id int) string {
	return fmt.Sprintf("params%d.json", id)
}

// ScriptFileName is the job script file name for a job identifier.
func ScriptFileName(id int) string {
	return fmt.Sprintf("job%d.sh", id)
}

// Plan is a fully resolved sweep, ready to generate.
type Plan struct {
	Sweep *config.Sweep
	// Baseline already has the sweep's overrides applied.
	Baseline baseline.Params
	Template *jobscript.Template
	// Dir is the directory all files of the sweep are written into.
	Dir string
}

// NewPlan applies the sweep's overrides to base and bundles everything the
// generator needs. base is not modified.
func NewPlan(s *config.Sweep, base baseline.Params, tmpl *jobscript.Template, dir string) *Plan {
	return &Plan{
		Sweep:    s,
		Baseline: base.With(s.Overrides),
		Template: tmpl,
		Dir:      dir,
	}
}

// Job is the record of a single emitted job. It only lives for one iteration.
type Job struct {
	ID         int
	Point      Point
	Name       string
	ParamsPath string
	ScriptPath string
}

// Generator writes paired parameter and job script files for a plan.
type Generator struct {
	sink Sink
	// inMemory is set when nothing reaches the disk, as in a dry run.
	inMemory bool
}

// NewGenerator creates a generator writing to sink.
func NewGenerator(sink Sink) *Generator {
	_, inMemory := sink.(*MemSink)
	return &Generator{sink: sink, inMemory: inMemory}
}

// Generate writes one parameter file and one job script per point of the
// plan, numbering jobs from startID. It returns the identifier following the
// last job written. On error, files written so far are left in place and the
// returned identifier is the one that failed.
func (g *Generator) Generate(ctx context.Context, plan *Plan, startID int) (int, error) {
	logger := ctxlog.FromContext(ctx)

	if err := g.sink.MkdirAll(plan.Dir); err != nil {
		return startID, err
	}
	logger.Debug("Output directory ready.", "dir", plan.Dir, "jobs", Count(plan.Sweep))

	msg := "Wrote job script."
	if g.inMemory {
		msg = "Rendered job script."
	}

	id := startID
	for p := range Points(plan.Sweep) {
		if err := ctx.Err(); err != nil {
			return id, err
		}
		job, err := g.writeJob(plan, p, id)
		if err != nil {
			return id, err
		}
		logger.Info(msg, "path", job.ScriptPath, "job_id", job.ID, "job_name", job.Name)
		id++
	}
	return id, nil
}

// writeJob renders and writes the file pair for a single point.
func (g *Generator) writeJob(plan *Plan, p Point, id int) (*Job, error) {
	job := &Job{
		ID:         id,
		Point:      p,
		Name:       p.Name(),
		ParamsPath: filepath.Join(plan.Dir, ParamsFileName(id)),
		ScriptPath: filepath.Join(plan.Dir, ScriptFileName(id)),
	}

	params, err := p.Params(plan.Baseline).Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameters for job %d: %w", id, err)
	}
	script, err := plan.Template.Render(scriptData(plan.Sweep, job))
	if err != nil {
		return nil, err
	}

	if err := g.sink.WriteFile(job.ParamsPath, params); err != nil {
		return nil, err
	}
	if err := g.sink.WriteFile(job.ScriptPath, script); err != nil {
		return nil, err
	}
	return job, nil
}

func scriptData(s *config.Sweep, job *Job) jobscript.Data {
	grid := job.Point.Grid()
	d := jobscript.Data{
		JobID:       job.ID,
		JobName:     job.Name,
		ParamNames:  make([]string, len(s.Axes)),
		ParamValues: make([]string, len(grid)),
		Run:         FormatValue(job.Point.Run()),
		ParamsFile:  filepath.Base(job.ParamsPath),
		Job:         s.Job,
	}
	for i, a := range s.Axes {
		d.ParamNames[i] = a.Name
		d.ParamValues[i] = FormatValue(grid[i])
	}
	if v, ok := job.Point.Sub(); ok {
		d.SubName = s.SubParam.Name
		d.SubValue = FormatValue(v)
	}
	return d
}
