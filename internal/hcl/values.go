// This file contains the logic for converting evaluated cty values into the
// plain Go scalars and maps the config model carries.

package hcl

import (
	"fmt"
	"math"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ctyToNative recursively converts a cty.Value to its most natural Go
// counterpart. Whole numbers become int64 so they serialize as `1`, not `1.0`.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number to float64: %w", err)
		}
		if math.IsInf(f, 0) {
			return nil, fmt.Errorf("number %s is out of range", bf.String())
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, err
			}
			slice = append(slice, nativeVal)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		goMap := make(map[string]any, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			key, val := it.Element()
			keyStr := key.AsString()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", keyStr, err)
			}
			goMap[keyStr] = nativeVal
		}
		return goMap, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

// scalarList converts a list, tuple or set of primitive values into axis
// values. Nested collections are rejected because they cannot be rendered
// into a job name.
func scalarList(v cty.Value) ([]any, error) {
	if v.IsNull() {
		return nil, fmt.Errorf("values must not be null")
	}
	ty := v.Type()
	if !(ty.IsListType() || ty.IsTupleType() || ty.IsSetType()) {
		return nil, fmt.Errorf("values must be a list, got %s", ty.FriendlyName())
	}

	out := make([]any, 0, v.LengthInt())
	it := v.ElementIterator()
	for idx := 0; it.Next(); idx++ {
		_, el := it.Element()
		if !el.Type().IsPrimitiveType() {
			return nil, fmt.Errorf("element %d must be a number, string or bool, got %s", idx, el.Type().FriendlyName())
		}
		native, err := ctyToNative(el)
		if err != nil {
			return nil, err
		}
		if native == nil {
			return nil, fmt.Errorf("element %d must not be null", idx)
		}
		out = append(out, native)
	}
	return out, nil
}
