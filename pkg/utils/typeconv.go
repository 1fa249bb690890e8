package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToFloat64 converts a scalar cell value to a float64. Dataset sources hand
// back a mix of parsed numbers (CSV/XLSX) and driver-native types (SQL).
func ToFloat64(val interface{}) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", val)
	}
}

// ToKeyString renders a group-key value in a canonical form so that e.g.
// float64(1) and int64(1) fall into the same group.
func ToKeyString(val interface{}) string {
	switch v := val.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 64)
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", val)
	}
}
