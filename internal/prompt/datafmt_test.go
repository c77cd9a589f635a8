package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "nil data",
			in:   nil,
			want: "No data provided",
		},
		{
			name: "empty mapping",
			in:   map[string]any{},
			want: "No data provided",
		},
		{
			name: "nested mapping sorted by key",
			in: map[string]any{
				"Q3": map[string]any{"North America": 58.3},
				"Q2": map[string]any{"North America": 45.2},
			},
			want: "Q2:\n  North America: 45.2\nQ3:\n  North America: 58.3",
		},
		{
			name: "sequence preserves order",
			in:   []any{"c", "a", "b"},
			want: "- c\n- a\n- b",
		},
		{
			name: "sequence of mappings",
			in: []any{
				map[string]any{"region": "Asia", "revenue": 35.6},
			},
			want: "-\n  region: Asia\n  revenue: 35.6",
		},
		{
			name: "scalar kinds",
			in: map[string]any{
				"flag":  true,
				"count": float64(3),
				"label": "north",
				"gap":   nil,
			},
			want: "count: 3\nflag: true\ngap: null\nlabel: north",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, RenderData(tc.in))
		})
	}
}

func TestRenderDataDeterministic(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"b": []any{float64(1), float64(2)},
		"a": map[string]any{"z": "last", "m": "middle", "a": "first"},
	}

	first := RenderData(in)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, RenderData(in))
	}
}
