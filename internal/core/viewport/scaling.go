package viewport

import "math"

// ScalingManager caps the scrollable extent of an axis at MaxScrollSize.
// Offsets reported to the scroll container are "safe" offsets inside the
// capped range; cell offsets stay real and are shifted back into view by
// OffsetAdjustment.
type ScalingManager struct {
	*Manager
	MaxScrollSize float64 // zero disables rescaling
}

// NewScalingManager wraps m with a maxScrollSize cap.
func NewScalingManager(m *Manager, maxScrollSize float64) *ScalingManager {
	return &ScalingManager{Manager: m, MaxScrollSize: maxScrollSize}
}

// AreOffsetsAdjusted reports whether the real extent exceeds the cap.
func (s *ScalingManager) AreOffsetsAdjusted() bool {
	return s.MaxScrollSize > 0 && s.Manager.TotalSize() > s.MaxScrollSize
}

// SafeTotalSize returns the capped extent.
func (s *ScalingManager) SafeTotalSize() float64 {
	if s.AreOffsetsAdjusted() {
		return s.MaxScrollSize
	}
	return s.Manager.TotalSize()
}

// DensityScale is the ratio of safe to real extent, 1 when not rescaled.
func (s *ScalingManager) DensityScale() float64 {
	if !s.AreOffsetsAdjusted() {
		return 1
	}
	return s.MaxScrollSize / s.Manager.TotalSize()
}

// OffsetAdjustment returns the shift added to real cell offsets so that
// cells line up with the safe scroll offset.
func (s *ScalingManager) OffsetAdjustment(containerSize, safeOffset float64) float64 {
	total := s.Manager.TotalSize()
	safe := s.SafeTotalSize()
	pct := offsetPercentage(containerSize, safeOffset, safe)
	return math.Round(pct * (safe - total))
}

// VisibleRange resolves the visible cells for a safe scroll offset.
func (s *ScalingManager) VisibleRange(containerSize, safeOffset float64) (start, stop int, ok bool) {
	return s.Manager.VisibleRange(containerSize, s.safeToReal(containerSize, safeOffset))
}

// UpdatedOffsetForIndex returns the safe scroll offset that brings target
// into view.
func (s *ScalingManager) UpdatedOffsetForIndex(containerSize, currentSafeOffset float64, target int) float64 {
	offset := s.Manager.UpdatedOffsetForIndex(containerSize, s.safeToReal(containerSize, currentSafeOffset), target)
	return s.realToSafe(containerSize, offset)
}

// MaxSafeOffset returns the largest safe scroll offset for containerSize.
func (s *ScalingManager) MaxSafeOffset(containerSize float64) float64 {
	return math.Max(0, s.SafeTotalSize()-containerSize)
}

func (s *ScalingManager) safeToReal(containerSize, offset float64) float64 {
	total := s.Manager.TotalSize()
	safe := s.SafeTotalSize()
	if total == safe {
		return offset
	}
	pct := offsetPercentage(containerSize, offset, safe)
	return math.Round(pct * (total - containerSize))
}

func (s *ScalingManager) realToSafe(containerSize, offset float64) float64 {
	total := s.Manager.TotalSize()
	safe := s.SafeTotalSize()
	if total == safe {
		return offset
	}
	pct := offsetPercentage(containerSize, offset, total)
	return math.Round(pct * (safe - containerSize))
}

func offsetPercentage(containerSize, offset, totalSize float64) float64 {
	if totalSize <= containerSize {
		return 0
	}
	return offset / (totalSize - containerSize)
}
