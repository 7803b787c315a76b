package styles

// Header and group markers.
var (
	IconSortAsc   = "▲"
	IconSortDesc  = "▼"
	IconPinned    = "▌"
	IconGrouped   = "≡"
	IconExpanded  = "▾"
	IconCollapsed = "▸"
	IconEllipsis  = "…"
)
