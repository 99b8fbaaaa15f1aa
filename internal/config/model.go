package config

import (
	"errors"
	"fmt"
)

// Model is the unified, format-agnostic representation of every sweep
// discovered by a loader, in discovery order.
type Model struct {
	Sweeps []*Sweep
}

// Sweep is the format-agnostic representation of a `sweep` block.
type Sweep struct {
	Name       string
	SourceFile string

	// BaseJobID is the identifier assigned to the first emitted job.
	BaseJobID int
	// BaselinePath points at the baseline configuration file. Relative paths
	// have already been resolved against the sweep file's directory.
	BaselinePath string
	// TemplatePath is empty when the embedded default template should be used.
	TemplatePath string
	// OutputDir is relative to the output root chosen on the command line.
	OutputDir string

	// Overrides are applied to the baseline once, before enumeration.
	Overrides map[string]any

	// Axes vary across the grid, first axis slowest.
	Axes []*Axis
	// Repeat holds the run indices written to the seed field.
	Repeat *Axis
	// SubParam is the innermost loop. Nil when the sweep declares none.
	SubParam *Axis

	Job *JobSpec
}

// Axis is an ordered sequence of values for a single parameter. Values are
// plain Go scalars: int64, float64, string or bool.
type Axis struct {
	Name string
	// Tag follows the value in generated job names, e.g. "S" in "4S". The
	// sub-parameter tag precedes its value instead: "O" in "2O7".
	Tag    string
	Values []any
}

// Len returns the number of values on the axis. A nil axis has length one so
// that an absent loop contributes a single iteration to the product.
func (a *Axis) Len() int {
	if a == nil {
		return 1
	}
	return len(a.Values)
}

// JobSpec holds the scheduler resources and the invocation rendered into each
// job script.
type JobSpec struct {
	NTasks    int
	Time      string
	MemPerCPU string
	Partition string
	// Setup lines run before the invocation, e.g. environment module purges.
	Setup   []string
	Command string
	Args    []string
}

// DefaultJobSpec mirrors the resources the odour sweeps have always been
// submitted with.
func DefaultJobSpec() *JobSpec {
	return &JobSpec{
		NTasks:    1,
		Time:      "6:00:00",
		MemPerCPU: "32G",
		Partition: "cpu",
		Setup:     []string{"ml purge > /dev/null 2>&1"},
	}
}

// Validate checks the structural invariants a sweep must satisfy before any
// file is generated from it.
func (s *Sweep) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("sweep name must not be empty"))
	}
	if s.BaseJobID < 0 {
		errs = append(errs, fmt.Errorf("base_job_id must not be negative, got %d", s.BaseJobID))
	}
	if s.BaselinePath == "" {
		errs = append(errs, errors.New("baseline path is required"))
	}
	if len(s.Axes) == 0 {
		errs = append(errs, errors.New("at least one axis is required"))
	}
	if s.Repeat == nil {
		errs = append(errs, errors.New("repeat axis is required"))
	}
	if s.Job == nil || s.Job.Command == "" {
		errs = append(errs, errors.New("job command is required"))
	}
	// Without a tag the run and sub-parameter digits run together and job
	// names collide ("1"+"12" vs "11"+"2").
	if s.SubParam != nil && s.SubParam.Tag == "" {
		errs = append(errs, fmt.Errorf("subparam %q requires a tag", s.SubParam.Name))
	}

	seen := make(map[string]struct{})
	for _, axis := range s.Dimensions() {
		if axis.Name == "" {
			errs = append(errs, errors.New("axis name must not be empty"))
			continue
		}
		if _, dup := seen[axis.Name]; dup {
			errs = append(errs, fmt.Errorf("parameter %q is swept more than once", axis.Name))
		}
		seen[axis.Name] = struct{}{}
		if len(axis.Values) == 0 {
			errs = append(errs, fmt.Errorf("axis %q has no values", axis.Name))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid sweep %q in %s: %w", s.Name, s.SourceFile, err)
	}
	return nil
}

// Dimensions returns every non-nil axis in iteration order: grid axes, then
// the repeat axis, then the sub-parameter axis.
func (s *Sweep) Dimensions() []*Axis {
	dims := make([]*Axis, 0, len(s.Axes)+2)
	dims = append(dims, s.Axes...)
	if s.Repeat != nil {
		dims = append(dims, s.Repeat)
	}
	if s.SubParam != nil {
		dims = append(dims, s.SubParam)
	}
	return dims
}

// IndexAxis builds an axis whose values are 0..count-1.
func IndexAxis(name, tag string, count int) *Axis {
	values := make([]any, count)
	for i := range values {
		values[i] = int64(i)
	}
	return &Axis{Name: name, Tag: tag, Values: values}
}
