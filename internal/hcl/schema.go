package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode all top-level blocks from a sweep file.
type fileRoot struct {
	Sweeps []*sweepBlock `hcl:"sweep,block"`
	Remain hcl.Body      `hcl:",remain"`
}

// sweepBlock is the raw decoding target for a `sweep "<name>" { ... }` block.
type sweepBlock struct {
	Name      string         `hcl:"name,label"`
	BaseJobID *int           `hcl:"base_job_id,optional"`
	Baseline  string         `hcl:"baseline"`
	Template  string         `hcl:"template,optional"`
	OutputDir string         `hcl:"output_dir,optional"`
	Overrides hcl.Expression `hcl:"overrides,optional"`

	Axes     []*axisBlock `hcl:"axis,block"`
	Repeat   *indexBlock  `hcl:"repeat,block"`
	SubParam *indexBlock  `hcl:"subparam,block"`
	Job      *jobBlock    `hcl:"job,block"`
}

type axisBlock struct {
	Name   string         `hcl:"name,label"`
	Tag    string         `hcl:"tag,optional"`
	Values hcl.Expression `hcl:"values"`
}

// indexBlock covers both `repeat` and `subparam`. A repeat only accepts
// count; a subparam accepts count or an explicit values list.
type indexBlock struct {
	Name   string         `hcl:"name,label"`
	Tag    string         `hcl:"tag,optional"`
	Count  *int           `hcl:"count,optional"`
	Values hcl.Expression `hcl:"values,optional"`
}

type jobBlock struct {
	NTasks    *int      `hcl:"ntasks,optional"`
	Time      *string   `hcl:"time,optional"`
	MemPerCPU *string   `hcl:"mem_per_cpu,optional"`
	Partition *string   `hcl:"partition,optional"`
	Setup     *[]string `hcl:"setup,optional"`
	Command   string    `hcl:"command"`
	Args      []string  `hcl:"args,optional"`
}
