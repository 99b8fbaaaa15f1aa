package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// newEvalContext returns the evaluation context every sweep expression is
// evaluated in. There are no variables; only a small set of pure functions
// useful for building axis value lists.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"range":  stdlib.RangeFunc,
			"concat": stdlib.ConcatFunc,
			"length": stdlib.LengthFunc,
			"min":    stdlib.MinFunc,
			"max":    stdlib.MaxFunc,
			"floor":  stdlib.FloorFunc,
			"ceil":   stdlib.CeilFunc,
		},
	}
}
