package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi]. NaN passes through unchanged.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Sign returns 1 for positive values and -1 otherwise. Zero is the caller's concern.
func Sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}

// TileIndex converts a world coordinate to the index of the tile containing it.
func TileIndex(v, tileSize float64) int {
	return int(math.Floor(v / tileSize))
}
