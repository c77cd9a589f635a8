package prompt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// noDataMarker is rendered when a table request carries no raw data.
const noDataMarker = "No data provided"

// RenderData serializes an arbitrary nested value (as decoded from JSON:
// mappings, sequences, scalars) into a readable indented block with a
// deterministic traversal order: mapping keys sorted lexicographically,
// sequences in their given order.
func RenderData(v any) string {
	if v == nil {
		return noDataMarker
	}
	if m, ok := v.(map[string]any); ok && len(m) == 0 {
		return noDataMarker
	}

	var b strings.Builder
	renderValue(&b, v, 0)
	return strings.TrimRight(b.String(), "\n")
}

func renderValue(b *strings.Builder, v any, depth int) {
	indent := strings.Repeat("  ", depth)

	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := val[k]
			if isScalar(child) {
				fmt.Fprintf(b, "%s%s: %s\n", indent, k, renderScalar(child))
			} else {
				fmt.Fprintf(b, "%s%s:\n", indent, k)
				renderValue(b, child, depth+1)
			}
		}

	case []any:
		for _, item := range val {
			if isScalar(item) {
				fmt.Fprintf(b, "%s- %s\n", indent, renderScalar(item))
			} else {
				fmt.Fprintf(b, "%s-\n", indent)
				renderValue(b, item, depth+1)
			}
		}

	default:
		fmt.Fprintf(b, "%s%s\n", indent, renderScalar(v))
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	}
	return true
}

func renderScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
