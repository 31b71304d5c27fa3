// Package gamemath holds geometry helpers shared by the collision overlays.
package gamemath

import (
	"math"

	"github.com/solarlune/resolv"
)

// SlopeSurfaceY returns the Y of a ramp's walkable surface at world x.
// upRightTag and upLeftTag are the resolv tags used to identify slope direction.
// Positions outside the ramp are clamped to its edges.
func SlopeSurfaceY(x float64, ramp *resolv.Object, upRightTag, upLeftTag string) float64 {
	if ramp.W <= 0 {
		return ramp.Y
	}
	relativeX := math.Max(0, math.Min(ramp.W, x-ramp.X))
	slope := relativeX / ramp.W

	if ramp.HasTags(upRightTag) {
		return ramp.Y + ramp.H*(1-slope)
	}
	if ramp.HasTags(upLeftTag) {
		return ramp.Y + ramp.H*slope
	}
	return ramp.Y
}

// BelowSurface reports whether the world point (x, y) is inside the solid
// part of a ramp, i.e. under its surface.
func BelowSurface(x, y float64, ramp *resolv.Object, upRightTag, upLeftTag string) bool {
	return y >= SlopeSurfaceY(x, ramp, upRightTag, upLeftTag)
}
