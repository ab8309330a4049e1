package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNaN is returned when a row carries a missing (null) value.
var ErrNaN = errors.New("input contains NaN")

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, ErrNaN
	case float64:
		if math.IsNaN(x) {
			return 0, ErrNaN
		}
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return parseNumeric(x.String())
	case string:
		return parseNumeric(x)
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported feature value of type %T", v)
	}
}

func parseNumeric(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("could not convert string to float: %q", s)
	}
	if math.IsNaN(f) {
		return 0, ErrNaN
	}
	return f, nil
}
