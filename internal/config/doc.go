// Package config defines the format-agnostic model of a sweep definition,
// along with the Loader interface for reading sweeps from various sources.
//
// The `config.Model` is the single source of truth for the `sweep` package.
// Concrete loaders, such as the HCL one, are provided in separate packages.
package config
