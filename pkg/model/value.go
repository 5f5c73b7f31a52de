// pkg/model/value.go
package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// IsNull reports whether a cell value should be treated as absent.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	if f, ok := v.(float64); ok {
		return math.IsNaN(f)
	}
	return false
}

// ToString converts a cell value to its string form. Nil becomes "".
func ToString(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ToFloat attempts to convert a cell value to float64.
func ToFloat(v any) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("nil value")
	}
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) {
			return 0, fmt.Errorf("NaN value")
		}
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		cleaned := strings.TrimSpace(val)
		if cleaned == "" {
			return 0, fmt.Errorf("empty string")
		}
		return strconv.ParseFloat(cleaned, 64)
	case []byte:
		return ToFloat(string(val))
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}

// Round2 rounds to two decimal places, the precision of every monetary field.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Render formats a cell value for CSV output. Nil renders as an empty field.
func Render(v any) string {
	return ToString(v)
}
