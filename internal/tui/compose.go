package tui

import (
	"image"
	"math"
	"slices"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/vgrid/internal/core/geom"
	"github.com/colonyops/vgrid/internal/core/render"
)

// node is one element of the renderer's output: either a cell with its
// rendered block, or an overlay wrapping cells.
type node struct {
	point   geom.Point
	style   render.Style
	content string

	overlay  *render.Overlay
	children []node
}

func wrapOverlay(o render.Overlay, cells []node) node {
	return node{overlay: &o, children: cells}
}

// hit maps a screen rectangle back to the cell drawn there.
type hit struct {
	rect  image.Rectangle
	point geom.Point
	z     int
}

// frame holds the hit regions of the last composed screen.
type frame struct {
	hits []hit
}

// at returns the topmost cell drawn at screen position (x, y).
func (f *frame) at(x, y int) (geom.Point, bool) {
	if f == nil {
		return geom.Point{}, false
	}
	best := -1
	var p geom.Point
	for _, h := range f.hits {
		if h.z > best && image.Pt(x, y).In(h.rect) {
			best = h.z
			p = h.point
		}
	}
	return p, best >= 0
}

// compositor places nodes on a width × height screen scrolled to
// (scrollLeft, scrollTop). Overlays stick to the edge they are bound to and
// draw above plain cells: pinned columns, then the header, then the corner.
type compositor struct {
	width, height         int
	scrollLeft, scrollTop float64

	layers []*lipgloss.Layer
	hits   []hit
}

func (c *compositor) compose(nodes []node) string {
	for _, n := range nodes {
		if n.overlay == nil {
			c.place(n, n.style.Left-c.scrollLeft, n.style.Top-c.scrollTop, 0)
			continue
		}

		o := n.overlay
		ox := o.MarginLeft - c.scrollLeft
		oy := o.MarginTop - c.scrollTop
		z := 0
		if o.Left {
			ox = math.Max(ox, 0)
			z++
		}
		if o.Top {
			oy = math.Max(oy, 0)
			z += 2
		}
		for _, child := range n.children {
			c.place(child, ox+child.style.Left+o.TranslateX, oy+child.style.Top+o.TranslateY, z)
		}
	}

	base := lipgloss.NewLayer(blank(c.width, c.height))
	layers := append([]*lipgloss.Layer{base}, c.layers...)
	return lipgloss.NewCompositor(layers...).Render()
}

// place clips a cell block to the screen and queues it as a layer.
func (c *compositor) place(n node, fx, fy float64, z int) {
	x, y := int(math.Round(fx)), int(math.Round(fy))
	w, h := int(n.style.Width), int(n.style.Height)

	r := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, c.width, c.height))
	if r.Empty() {
		return
	}

	lines := strings.Split(n.content, "\n")
	clipped := make([]string, 0, r.Dy())
	for row := r.Min.Y - y; row < r.Max.Y-y; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		clipped = append(clipped, ansi.Cut(line, r.Min.X-x, r.Max.X-x))
	}

	c.layers = append(c.layers, lipgloss.NewLayer(strings.Join(clipped, "\n")).X(r.Min.X).Y(r.Min.Y).Z(z+1))
	c.hits = append(c.hits, hit{rect: r, point: n.point, z: z})
}

func blank(width, height int) string {
	line := strings.Repeat(" ", max(width, 0))
	return strings.Join(slices.Repeat([]string{line}, max(height, 1)), "\n")
}
