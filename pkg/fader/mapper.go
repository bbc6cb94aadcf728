package fader

// Map rescales a smoothed sample from the calibrated bounds to the
// 14-bit output domain, clamped to [0, OutputRange]. Physical travel
// may exceed the learned bounds at either extreme, so clamping is
// mandatory. Degenerate bounds (Max == Min) violate the Bounds
// invariant and are a caller bug, not a runtime condition.
func Map(smoothed int, b Bounds) int {
	out := (smoothed - b.Min) * OutputRange / (b.Max - b.Min)
	if out < 0 {
		return 0
	}
	if out > OutputRange {
		return OutputRange
	}
	return out
}
