package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/sweepgrid/internal/config"
	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
)

// DefaultBaseJobID is used when a sweep does not set base_job_id.
const DefaultBaseJobID = 5000

// DefaultRepeatName is the seed field written when a sweep has no repeat block.
const DefaultRepeatName = "seed"

// translateSweep converts the HCL-specific sweep schema into the agnostic model.
func (l *Loader) translateSweep(ctx context.Context, evalCtx *hcl.EvalContext, b *sweepBlock, file string) (*config.Sweep, error) {
	logger := ctxlog.FromContext(ctx)
	wrap := func(err error) error {
		return fmt.Errorf("in sweep %q (%s): %w", b.Name, file, err)
	}

	s := &config.Sweep{
		Name:         b.Name,
		SourceFile:   file,
		BaseJobID:    DefaultBaseJobID,
		BaselinePath: resolvePath(file, b.Baseline),
		TemplatePath: resolvePath(file, b.Template),
		OutputDir:    b.OutputDir,
	}
	if b.BaseJobID != nil {
		s.BaseJobID = *b.BaseJobID
	}
	if s.OutputDir == "" {
		s.OutputDir = b.Name
	}

	overrides, err := evalOverrides(evalCtx, b.Overrides)
	if err != nil {
		return nil, wrap(err)
	}
	s.Overrides = overrides

	for _, a := range b.Axes {
		axis, err := translateAxis(evalCtx, a)
		if err != nil {
			return nil, wrap(err)
		}
		s.Axes = append(s.Axes, axis)
	}

	if s.Repeat, err = translateRepeat(evalCtx, b.Repeat); err != nil {
		return nil, wrap(err)
	}
	if b.SubParam != nil {
		if s.SubParam, err = translateSubParam(evalCtx, b.SubParam); err != nil {
			return nil, wrap(err)
		}
	}

	s.Job = translateJob(b.Job)

	logger.Debug("Translated sweep.",
		"name", s.Name,
		"axes", len(s.Axes),
		"repeats", s.Repeat.Len(),
		"subparam", s.SubParam != nil,
		"base_job_id", s.BaseJobID,
	)
	return s, nil
}

func evalOverrides(evalCtx *hcl.EvalContext, expr hcl.Expression) (map[string]any, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid overrides: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("overrides must be an object, got %s", ty.FriendlyName())
	}
	native, err := ctyToNative(val)
	if err != nil {
		return nil, fmt.Errorf("invalid overrides: %w", err)
	}
	return native.(map[string]any), nil
}

func translateAxis(evalCtx *hcl.EvalContext, a *axisBlock) (*config.Axis, error) {
	val, diags := a.Values.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("axis %q: %w", a.Name, diags)
	}
	values, err := scalarList(val)
	if err != nil {
		return nil, fmt.Errorf("axis %q: %w", a.Name, err)
	}
	return &config.Axis{Name: a.Name, Tag: a.Tag, Values: values}, nil
}

// translateRepeat builds the run-index axis. Repeats are always 0..count-1
// so that the run index doubles as the random seed.
func translateRepeat(evalCtx *hcl.EvalContext, b *indexBlock) (*config.Axis, error) {
	if b == nil {
		return config.IndexAxis(DefaultRepeatName, "", 1), nil
	}
	if isDefined(evalCtx, b.Values) {
		return nil, fmt.Errorf("repeat %q: values is not supported, use count", b.Name)
	}
	if b.Count == nil {
		return nil, fmt.Errorf("repeat %q: count is required", b.Name)
	}
	if *b.Count < 1 {
		return nil, fmt.Errorf("repeat %q: count must be at least 1, got %d", b.Name, *b.Count)
	}
	return config.IndexAxis(b.Name, b.Tag, *b.Count), nil
}

func translateSubParam(evalCtx *hcl.EvalContext, b *indexBlock) (*config.Axis, error) {
	hasValues := isDefined(evalCtx, b.Values)
	switch {
	case hasValues && b.Count != nil:
		return nil, fmt.Errorf("subparam %q: count and values cannot be used together", b.Name)
	case b.Count != nil:
		if *b.Count < 1 {
			return nil, fmt.Errorf("subparam %q: count must be at least 1, got %d", b.Name, *b.Count)
		}
		return config.IndexAxis(b.Name, b.Tag, *b.Count), nil
	case hasValues:
		return translateAxis(evalCtx, &axisBlock{Name: b.Name, Tag: b.Tag, Values: b.Values})
	default:
		return nil, fmt.Errorf("subparam %q: one of count or values is required", b.Name)
	}
}

// translateJob fills unset job attributes from config.DefaultJobSpec.
func translateJob(b *jobBlock) *config.JobSpec {
	spec := config.DefaultJobSpec()
	if b == nil {
		return spec
	}
	if b.NTasks != nil {
		spec.NTasks = *b.NTasks
	}
	if b.Time != nil {
		spec.Time = *b.Time
	}
	if b.MemPerCPU != nil {
		spec.MemPerCPU = *b.MemPerCPU
	}
	if b.Partition != nil {
		spec.Partition = *b.Partition
	}
	if b.Setup != nil {
		spec.Setup = *b.Setup
	}
	spec.Command = b.Command
	spec.Args = b.Args
	return spec
}

// isDefined reports whether an optional expression attribute was present in
// the source. gohcl fills omitted hcl.Expression fields with a static null.
func isDefined(evalCtx *hcl.EvalContext, expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return true
	}
	return !val.IsNull()
}
