package render

// StickyOptions configures a sticky overlay.
type StickyOptions struct {
	Key  string // overlay cache key; unique per rule
	Top  bool   // stick to the top edge
	Left bool   // stick to the left edge
}

// Overlay positions a run of cells so it stays fixed at a viewport edge.
//
// MarginLeft/MarginTop place the overlay in the scrolled content, in scroll
// (safe) coordinates. TranslateX/TranslateY move the wrapped cells, whose
// styles are real offsets plus the offset adjustment, back to the overlay's
// origin.
type Overlay struct {
	Key        string
	Top        bool
	Left       bool
	MarginLeft float64
	MarginTop  float64
	Width      float64
	TranslateX float64
	TranslateY float64
}

// Sticky returns a decorator that wraps a rule's cells into a single overlay
// node built by wrap.
func Sticky[N any](opts StickyOptions, wrap func(Overlay, []N) N) RangeDecorator[N] {
	return func(nodes []N, rc RangeContext[N]) []N {
		o := rc.Caches.Overlays.Memo(opts.Key, func() Overlay {
			return measureOverlay(opts, rc)
		})

		// Offset adjustments move with the scroll position, so they are
		// folded in on every repaint rather than cached.
		if opts.Left {
			o.TranslateX -= rc.HorizontalOffsetAdjustment
		}
		if opts.Top {
			o.TranslateY -= rc.VerticalOffsetAdjustment
		}
		return []N{wrap(o, nodes)}
	}
}

func measureOverlay[N any](opts StickyOptions, rc RangeContext[N]) Overlay {
	o := Overlay{Key: opts.Key, Top: opts.Top, Left: opts.Left}

	var marginLeft, marginTop float64
	if opts.Left {
		marginLeft = rc.Columns.SizeAndPositionOf(rc.BBox.Min.X).Offset
	}
	if opts.Top {
		marginTop = rc.Rows.SizeAndPositionOf(rc.BBox.Min.Y).Offset
	}

	o.MarginLeft = marginLeft * scale(rc.HorizontalScale)
	o.MarginTop = marginTop * scale(rc.VerticalScale)
	o.TranslateX = -marginLeft
	o.TranslateY = -marginTop

	for x := rc.BBox.Min.X; x <= rc.BBox.Max.X; x++ {
		o.Width += rc.Columns.SizeAndPositionOf(x).Size
	}
	return o
}

func scale(s float64) float64 {
	if s == 0 {
		return 1
	}
	return s
}
