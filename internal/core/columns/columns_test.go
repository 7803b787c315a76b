package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/vgrid/internal/core/types"
)

func testSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema(
		Column{ID: "name", Kind: types.String, Width: 20},
		Column{ID: "age", Kind: types.Number},
		Column{ID: "active", Kind: types.Boolean, Label: "Active?"},
		Column{ID: "joined", Kind: types.Date},
	)
	require.NoError(t, err)
	return s
}

func ids(l *Layout) []string {
	out := make([]string, l.Len())
	for i := range out {
		d, _ := l.At(i)
		out[i] = d.ID
	}
	return out
}

func TestNewSchema_Rejects(t *testing.T) {
	tests := []struct {
		name string
		cols []Column
	}{
		{name: "missing id", cols: []Column{{Kind: types.String}}},
		{name: "duplicate", cols: []Column{{ID: "a", Kind: types.String}, {ID: "a", Kind: types.Number}}},
		{name: "unknown kind", cols: []Column{{ID: "a", Kind: "money"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.cols...)
			require.Error(t, err)
		})
	}
}

func TestSchema_Lookups(t *testing.T) {
	s := testSchema(t)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []string{"name", "age", "active", "joined"}, s.IDs())

	k, ok := s.Kind("active")
	require.True(t, ok)
	assert.Equal(t, types.Boolean, k)

	_, ok = s.Kind("nope")
	assert.False(t, ok)

	c, _ := s.Column("active")
	assert.Equal(t, "Active?", c.Title())
	c, _ = s.Column("age")
	assert.Equal(t, "age", c.Title())
}

func TestNewLayout(t *testing.T) {
	l, err := NewLayout(testSchema(t), LayoutOptions{
		Columns:      []string{"name", "age", "joined"},
		Pins:         []string{"joined", "joined"},
		Widths:       map[string]int{"age": 7},
		DefaultWidth: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"joined", "name", "age"}, ids(l))
	assert.Equal(t, 1, l.PinCount())
	assert.Equal(t, 12, l.Width(0), "falls back to the default width")
	assert.Equal(t, 20, l.Width(1))
	assert.Equal(t, 7, l.Width(2))
}

func TestNewLayout_Errors(t *testing.T) {
	_, err := NewLayout(testSchema(t), LayoutOptions{Columns: []string{"ghost"}})
	require.Error(t, err)

	_, err = NewLayout(testSchema(t), LayoutOptions{Columns: []string{"name"}, Pins: []string{"age"}})
	require.Error(t, err)
}

func TestLayout_DuplicateKeepsSemanticID(t *testing.T) {
	l, err := NewLayout(testSchema(t), LayoutOptions{Pins: []string{"name"}})
	require.NoError(t, err)

	orig, _ := l.At(0)
	dup := l.Duplicate(0)

	assert.Equal(t, []string{"name", "name", "age", "active", "joined"}, ids(l))
	assert.Equal(t, "name", dup.ID)
	assert.NotEqual(t, orig.Key, dup.Key)
	assert.Equal(t, 2, l.PinCount(), "duplicate of a pinned column stays pinned")

	at1, _ := l.At(1)
	assert.Equal(t, dup.Key, at1.Key)

	l.Duplicate(3)
	assert.Equal(t, []string{"name", "name", "age", "active", "active", "joined"}, ids(l))
	assert.Equal(t, 2, l.PinCount())
}

func TestLayout_RemoveAndResize(t *testing.T) {
	l, err := NewLayout(testSchema(t), LayoutOptions{Pins: []string{"name", "age"}, DefaultWidth: 10})
	require.NoError(t, err)

	removed := l.Remove(0)
	assert.Equal(t, "name", removed.ID)
	assert.Equal(t, 1, l.PinCount())
	assert.Equal(t, []string{"age", "active", "joined"}, ids(l))

	l.SetWidth(1, 30)
	assert.Equal(t, 30, l.Width(1))
	l.SetWidth(1, -5)
	assert.Equal(t, 1, l.Width(1))

	ix, ok := l.IndexOf("joined")
	require.True(t, ok)
	assert.Equal(t, 2, ix)
}
