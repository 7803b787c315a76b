package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/vgrid/internal/core/geom"
	"github.com/colonyops/vgrid/internal/core/render"
	"github.com/colonyops/vgrid/pkg/tuitest"
)

func cell(x, y int, left, top, width float64, content string) node {
	return node{
		point:   geom.Pt(x, y),
		style:   render.Style{Left: left, Top: top, Width: width, Height: 1},
		content: content,
	}
}

func TestCompositor_ClipsScrolledCells(t *testing.T) {
	c := &compositor{width: 6, height: 1, scrollLeft: 2}

	out := c.compose([]node{
		cell(0, 0, 0, 0, 4, "abcd"),
		cell(1, 0, 4, 0, 4, "efgh"),
	})

	assert.Equal(t, "cdefgh", tuitest.StripANSI(out))

	p, ok := (&frame{hits: c.hits}).at(0, 0)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(0, 0), p)

	p, ok = (&frame{hits: c.hits}).at(3, 0)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(1, 0), p)
}

func TestCompositor_StickyOverlayCoversCells(t *testing.T) {
	c := &compositor{width: 6, height: 1, scrollLeft: 1}

	pinned := wrapOverlay(render.Overlay{Left: true, Width: 2}, []node{cell(0, 0, 0, 0, 2, "PP")})
	out := c.compose([]node{
		pinned,
		cell(1, 0, 2, 0, 4, "abcd"),
	})

	assert.Equal(t, "PPbcd", tuitest.StripANSI(out))

	f := &frame{hits: c.hits}
	p, ok := f.at(1, 0)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(0, 0), p, "overlay wins the hit test")

	p, ok = f.at(3, 0)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(1, 0), p)
}

func TestCompositor_TopOverlayStaysAtEdge(t *testing.T) {
	c := &compositor{width: 4, height: 3, scrollTop: 5}

	header := wrapOverlay(render.Overlay{Top: true}, []node{cell(0, 0, 0, 0, 4, "HEAD")})
	out := c.compose([]node{
		header,
		cell(0, 6, 0, 6, 4, "row6"),
	})

	lines := tuitest.StripANSI(out)
	assert.Equal(t, "HEAD\nrow6", lines)
}

func TestFrame_NoHits(t *testing.T) {
	var f *frame
	_, ok := f.at(0, 0)
	assert.False(t, ok)

	_, ok = (&frame{}).at(3, 3)
	assert.False(t, ok)
}
