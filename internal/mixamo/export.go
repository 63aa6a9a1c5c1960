package mixamo

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildGmsHash normalizes the raw gms_hash block from product metadata into
// the structure the export endpoint requires. Missing or nil metadata
// degrades to defaults; it never aborts an export.
func BuildGmsHash(raw map[string]any) GmsHash {
	return GmsHash{
		ModelID:   intField(raw, "model-id", 0),
		Mirror:    boolField(raw, "mirror", false),
		Trim:      trimRange(raw["trim"]),
		Overdrive: 0,
		Params:    paramsString(raw["params"]),
		ArmSpace:  intField(raw, "arm-space", 0),
		Inplace:   boolField(raw, "inplace", false),
	}
}

// paramsString flattens the params field into the comma-joined value string
// the export endpoint expects. A list of [name, value] pairs contributes the
// value of each pair; an empty or missing list becomes the literal "0"; any
// non-list value is stringified as-is.
func paramsString(v any) string {
	if v == nil {
		return "0"
	}

	list, ok := v.([]any)
	if !ok {
		return formatValue(v)
	}

	values := make([]string, 0, len(list))
	for _, p := range list {
		if pair, ok := p.([]any); ok && len(pair) >= 2 {
			values = append(values, formatValue(pair[1]))
		} else {
			values = append(values, formatValue(p))
		}
	}
	if len(values) == 0 {
		return "0"
	}
	return strings.Join(values, ",")
}

// trimRange coerces the trim field to a two-integer window, defaulting to
// the full clip when the value is absent or not a coercible pair.
func trimRange(v any) []int {
	list, ok := v.([]any)
	if !ok || len(list) < 2 {
		return []int{0, 100}
	}

	start, ok1 := toInt(list[0])
	end, ok2 := toInt(list[1])
	if !ok1 || !ok2 {
		return []int{0, 100}
	}
	return []int{start, end}
}

func intField(m map[string]any, key string, def int) int {
	v, ok := m[key]
	if !ok {
		return def
	}
	n, ok := toInt(v)
	if !ok {
		return def
	}
	return n
}

func boolField(m map[string]any, key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// formatValue renders a JSON-decoded value the way the export endpoint
// expects: numbers without a trailing ".0", booleans lowercase.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "0"
	default:
		return fmt.Sprintf("%v", val)
	}
}
