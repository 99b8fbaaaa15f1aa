// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for parsing sweep definition files, evaluating
// their expressions, and translating them into the format-agnostic model.
package hcl
