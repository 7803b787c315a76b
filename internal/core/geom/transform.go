package geom

// Transform maps a baseline range to a derived range. A list of transforms
// evaluated against the same baseline describes which cells a rule claims.
type Transform func(BBox) BBox

// Identity returns the baseline unchanged. Used as the trailing catch-all rule.
func Identity(b BBox) BBox {
	return b
}

// EmptyRange ignores the baseline and matches nothing.
func EmptyRange(BBox) BBox {
	return Empty
}

// FullRange ignores the baseline and matches everything.
func FullRange(BBox) BBox {
	return MaxBound
}

// CellRange ignores the baseline and matches exactly p.
func CellRange(p Point) Transform {
	return func(BBox) BBox { return PointBox(p) }
}

// Row restricts the baseline to row y, keeping its column extent.
func Row(y int) Transform {
	return RowRange(y, y)
}

// RowRange restricts the baseline to rows [y0, y1], keeping its column extent.
func RowRange(y0, y1 int) Transform {
	return func(b BBox) BBox {
		return BBox{Min: Point{X: b.Min.X, Y: y0}, Max: Point{X: b.Max.X, Y: y1}}
	}
}

// Column restricts the baseline to column x, keeping its row extent.
func Column(x int) Transform {
	return ColumnRange(x, x)
}

// ColumnRange restricts the baseline to columns [x0, x1], keeping its row extent.
func ColumnRange(x0, x1 int) Transform {
	return func(b BBox) BBox {
		return BBox{Min: Point{X: x0, Y: b.Min.Y}, Max: Point{X: x1, Y: b.Max.Y}}
	}
}

// Compose applies transforms left to right.
func Compose(ts ...Transform) Transform {
	return func(b BBox) BBox {
		for _, t := range ts {
			b = t(b)
		}
		return b
	}
}
