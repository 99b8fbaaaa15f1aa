package sweep

import (
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/specialistvlad/sweepgrid/internal/baseline"
	"github.com/specialistvlad/sweepgrid/internal/config"
)

// Point is one combination of the sweep: a value for every dimension, in
// config.Sweep.Dimensions order.
type Point struct {
	sweep  *config.Sweep
	Values []any
}

// Count returns the number of jobs a sweep produces.
func Count(s *config.Sweep) int {
	n := 1
	for _, d := range s.Dimensions() {
		n *= d.Len()
	}
	return n
}

// Points enumerates every combination of the sweep in generation order. The
// innermost dimension varies fastest.
func Points(s *config.Sweep) iter.Seq[Point] {
	dims := s.Dimensions()
	return func(yield func(Point) bool) {
		for _, d := range dims {
			if d.Len() == 0 {
				return
			}
		}

		idx := make([]int, len(dims))
		for {
			values := make([]any, len(dims))
			for i, d := range dims {
				values[i] = d.Values[idx[i]]
			}
			if !yield(Point{sweep: s, Values: values}) {
				return
			}

			// Advance like an odometer, innermost digit first.
			i := len(dims) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < dims[i].Len() {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

// Grid returns the grid axis values of the point.
func (p Point) Grid() []any {
	return p.Values[:len(p.sweep.Axes)]
}

// Run returns the repeat index of the point.
func (p Point) Run() any {
	return p.Values[len(p.sweep.Axes)]
}

// Sub returns the sub-parameter value of the point, if the sweep has one.
func (p Point) Sub() (any, bool) {
	if p.sweep.SubParam == nil {
		return nil, false
	}
	return p.Values[len(p.sweep.Axes)+1], true
}

// Name is the human-readable job name. Grid and repeat values are followed by
// their tag; the sub-parameter tag comes before its value, so run 2 of odour 7
// reads "4S0.5L2O7".
func (p Point) Name() string {
	var b strings.Builder
	for i, d := range p.sweep.Dimensions() {
		if d == p.sweep.SubParam {
			b.WriteString(d.Tag)
			b.WriteString(FormatValue(p.Values[i]))
			continue
		}
		b.WriteString(FormatValue(p.Values[i]))
		b.WriteString(d.Tag)
	}
	return b.String()
}

// Params returns a copy of base with every dimension's field set to the
// point's value. base is not modified.
func (p Point) Params(base baseline.Params) baseline.Params {
	params := base.Clone()
	for i, d := range p.sweep.Dimensions() {
		params[d.Name] = p.Values[i]
	}
	return params
}

// FormatValue renders an axis value for job names and script headers.
// Floats use the shortest representation that round-trips.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
