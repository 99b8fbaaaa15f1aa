package app

import (
	"errors"
	"fmt"
)

// UseSweepBaseJobID tells the app to number jobs from each sweep's own
// base_job_id.
const UseSweepBaseJobID = -1

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SweepPath  string // hcl file or directory
	OutputRoot string // sweep output directories are created under it

	LogFormat string
	LogLevel  string
	DryRun    bool
	// BaseJobID overrides the sweep files when not UseSweepBaseJobID. Numbering
	// then continues across all sweeps of the run.
	BaseJobID int
}

// NewConfig validates cfg and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SweepPath == "" {
		return nil, errors.New("SweepPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputRoot == "" {
		cfg.OutputRoot = "."
	}
	if cfg.BaseJobID < UseSweepBaseJobID {
		return nil, fmt.Errorf("BaseJobID must be %d or a non-negative number, got %d", UseSweepBaseJobID, cfg.BaseJobID)
	}
	return &cfg, nil
}
