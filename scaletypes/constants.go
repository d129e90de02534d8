// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaletypes

import (
	"fmt"
	"math"
	"strconv"

	"github.com/casbin/govaluate"
	"github.com/pk910/dynamic-scale/scaleutils"
)

// EvaluateLength resolves an array length expression. Plain integer literals are
// parsed directly, everything else is evaluated as a govaluate expression over the
// registry constants ("ACCOUNT_ID_LEN", "PAIR_LEN * 2").
func (r *Registry) EvaluateLength(expr string) (uint32, error) {
	if value, err := strconv.ParseUint(expr, 10, 32); err == nil {
		return uint32(value), nil
	}

	expression, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return 0, fmt.Errorf("%w: error parsing array length expression %q: %v", scaleutils.ErrMalformedTypeString, expr, err)
	}

	params := make(map[string]any, len(r.constants))
	for name, value := range r.constants {
		params[name] = normalizeConstant(value)
	}

	result, err := expression.Evaluate(params)
	if err != nil {
		return 0, fmt.Errorf("%w: error evaluating array length expression %q: %v", scaleutils.ErrMalformedTypeString, expr, err)
	}

	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: array length expression %q is not numeric", scaleutils.ErrMalformedTypeString, expr)
	}
	if value < 0 || value > math.MaxUint32 || value != math.Trunc(value) {
		return 0, fmt.Errorf("%w: array length expression %q yields invalid length %v", scaleutils.ErrMalformedTypeString, expr, value)
	}

	return uint32(value), nil
}

// govaluate compares and computes on float64 only
func normalizeConstant(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	}
	return value
}
