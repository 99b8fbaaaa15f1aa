// Package jobscript renders scheduler submission scripts from a template.
//
// Rendering goes through text/template with a fixed Data value, so a field
// containing something that looks like a placeholder is written out verbatim
// and never substituted a second time.
package jobscript

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/specialistvlad/sweepgrid/internal/config"
)

//go:embed slurm.sh.tmpl
var slurmTemplate string

// Data is everything a job script template can reference.
type Data struct {
	JobID   int
	JobName string
	// ParamNames and ParamValues are the grid axes of the job, in axis order.
	ParamNames  []string
	ParamValues []string
	// Run is the repeat index, already formatted.
	Run string
	// SubName and SubValue are empty when the sweep has no sub-parameter.
	SubName  string
	SubValue string
	// ParamsFile is the bare file name of the paired parameter file.
	ParamsFile string
	Job        *config.JobSpec
}

// Template is a parsed job script template, safe for concurrent use.
type Template struct {
	tmpl *template.Template
}

var funcs = template.FuncMap{
	"join": strings.Join,
}

// defaultTemplate is parsed once at init. The embedded text is part of the
// binary, so a parse failure is a programmer error.
var defaultTemplate = func() *Template {
	t, err := Parse("slurm.sh.tmpl", slurmTemplate)
	if err != nil {
		panic(err)
	}
	return t
}()

// Default returns the embedded SLURM template.
func Default() *Template {
	return defaultTemplate
}

// Parse parses text as a job script template.
func Parse(name, text string) (*Template, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(funcs).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse job script template %s: %w", name, err)
	}
	return &Template{tmpl: tmpl}, nil
}

// Load reads and parses a template file. An empty path selects Default.
func Load(path string) (*Template, error) {
	if path == "" {
		return Default(), nil
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, string(text))
}

// Render executes the template for a single job.
func (t *Template) Render(d Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("failed to render job script %s: %w", d.JobName, err)
	}
	return buf.Bytes(), nil
}
