package gamemath

// ClampToRange clamps v to [lo, hi].
func ClampToRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MsToSeconds converts a frame duration in milliseconds to seconds.
func MsToSeconds(ms float64) float64 {
	return ms / 1000
}
