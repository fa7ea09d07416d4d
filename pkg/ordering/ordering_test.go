package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		from int
		to   int
		want []string
	}{
		{
			name: "first to middle",
			in:   []string{"A", "B", "C", "D"},
			from: 0,
			to:   2,
			want: []string{"B", "C", "A", "D"},
		},
		{
			name: "middle to first",
			in:   []string{"A", "B", "C", "D"},
			from: 2,
			to:   0,
			want: []string{"C", "A", "B", "D"},
		},
		{
			name: "last to first",
			in:   []string{"A", "B", "C"},
			from: 2,
			to:   0,
			want: []string{"C", "A", "B"},
		},
		{
			name: "same position",
			in:   []string{"A", "B", "C"},
			from: 1,
			to:   1,
			want: []string{"A", "B", "C"},
		},
		{
			name: "adjacent swap down",
			in:   []string{"S1", "S2"},
			from: 1,
			to:   0,
			want: []string{"S2", "S1"},
		},
		{
			name: "out of range from",
			in:   []string{"A", "B"},
			from: 5,
			to:   0,
			want: []string{"A", "B"},
		},
		{
			name: "out of range to",
			in:   []string{"A", "B"},
			from: 0,
			to:   9,
			want: []string{"A", "B"},
		},
		{
			name: "empty",
			in:   []string{},
			from: 0,
			to:   0,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]string{}, tt.in...)
			got := Move(in, tt.from, tt.to)
			assert.Equal(t, tt.want, got)
			// 入参不被修改
			assert.Equal(t, tt.in, in)
		})
	}
}

func TestMovePreservesRelativeOrder(t *testing.T) {
	in := []string{"A", "B", "C", "D", "E"}
	got := Move(in, 1, 3)
	// B 之外的元素相对顺序不变
	assert.Equal(t, []string{"A", "C", "D", "B", "E"}, got)
}

func TestApplyDrag(t *testing.T) {
	order := []string{"S1", "S2", "S3"}

	t.Run("drag above previous", func(t *testing.T) {
		got, changed := ApplyDrag(order, "S2", "S1")
		assert.True(t, changed)
		assert.Equal(t, []string{"S2", "S1", "S3"}, got)
	})

	t.Run("drag to end", func(t *testing.T) {
		got, changed := ApplyDrag(order, "S1", "S3")
		assert.True(t, changed)
		assert.Equal(t, []string{"S2", "S3", "S1"}, got)
	})

	t.Run("same id is noop", func(t *testing.T) {
		got, changed := ApplyDrag(order, "S2", "S2")
		assert.False(t, changed)
		assert.Equal(t, order, got)
	})

	t.Run("unknown active is noop", func(t *testing.T) {
		got, changed := ApplyDrag(order, "missing", "S1")
		assert.False(t, changed)
		assert.Equal(t, order, got)
	})

	t.Run("unknown over is noop", func(t *testing.T) {
		got, changed := ApplyDrag(order, "S1", "missing")
		assert.False(t, changed)
		assert.Equal(t, order, got)
	})
}

func TestSameIDSet(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		current []string
		want    bool
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, true},
		{"permutation", []string{"b", "a"}, []string{"a", "b"}, true},
		{"missing id", []string{"a"}, []string{"a", "b"}, false},
		{"extra id", []string{"a", "b", "c"}, []string{"a", "b"}, false},
		{"duplicate hides missing", []string{"a", "a"}, []string{"a", "b"}, false},
		{"both empty", []string{}, []string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameIDSet(tt.ids, tt.current))
		})
	}
}
