package omap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abcd() *Map[string, int] {
	return New(
		Pair[string, int]{Key: "A", Value: 1},
		Pair[string, int]{Key: "B", Value: 2},
		Pair[string, int]{Key: "C", Value: 3},
		Pair[string, int]{Key: "D", Value: 4},
	)
}

func TestMap_LookupByKeyAndIndex(t *testing.T) {
	m := abcd()

	require.Equal(t, 4, m.Len())

	v, ok := m.Get("C")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	k, v := m.At(1)
	assert.Equal(t, "B", k)
	assert.Equal(t, 2, v)

	ix, ok := m.Index("D")
	assert.True(t, ok)
	assert.Equal(t, 3, ix)

	_, ok = m.Index("Z")
	assert.False(t, ok)
}

func TestMap_SetKeepsPosition(t *testing.T) {
	m := abcd()
	m.Set("B", 20)
	m.Set("E", 5)

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, m.Keys())
	assert.Equal(t, []int{1, 20, 3, 4, 5}, m.Values())
}

func TestMap_Move(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{name: "forward", from: 0, to: 2, want: []string{"B", "C", "A", "D"}},
		{name: "backward", from: 3, to: 1, want: []string{"A", "D", "B", "C"}},
		{name: "to end", from: 1, to: 3, want: []string{"A", "C", "D", "B"}},
		{name: "noop", from: 2, to: 2, want: []string{"A", "B", "C", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := abcd()
			m.Move(tt.from, tt.to)
			assert.Equal(t, tt.want, m.Keys())
			for i, k := range tt.want {
				ix, _ := m.Index(k)
				assert.Equal(t, i, ix, "index of %s", k)
			}
		})
	}
}

func TestMap_InsertDelete(t *testing.T) {
	m := abcd()

	m.Insert(1, "X", 9)
	assert.Equal(t, []string{"A", "X", "B", "C", "D"}, m.Keys())
	ix, _ := m.Index("C")
	assert.Equal(t, 3, ix)

	k, v := m.Delete(0)
	assert.Equal(t, "A", k)
	assert.Equal(t, 1, v)
	assert.Equal(t, []string{"X", "B", "C", "D"}, m.Keys())
	assert.False(t, m.Has("A"))

	m.Insert(m.Len(), "Y", 10)
	assert.Equal(t, "Y", m.Key(4))
}

func TestMap_PanicsOutOfRange(t *testing.T) {
	m := abcd()
	assert.Panics(t, func() { m.At(4) })
	assert.Panics(t, func() { m.Move(0, 9) })
	assert.Panics(t, func() { m.Insert(0, "A", 1) })
}

func TestMap_CloneIsIndependent(t *testing.T) {
	m := abcd()
	c := m.Clone()
	c.Move(0, 3)

	assert.Equal(t, []string{"A", "B", "C", "D"}, m.Keys())
	assert.Equal(t, []string{"B", "C", "D", "A"}, c.Keys())
}

func TestMap_All(t *testing.T) {
	var keys []string
	for k := range abcd().All() {
		keys = append(keys, k)
		if k == "B" {
			break
		}
	}
	assert.Equal(t, []string{"A", "B"}, keys)
}
