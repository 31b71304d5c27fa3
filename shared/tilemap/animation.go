package tilemap

// frameTicks is how many ticks a frame lasts at the given tick rate.
func frameTicks(f Frame, tickRate float64) float64 {
	return float64(f.Duration) / 1000 * tickRate
}

// SelectFrame returns the frame id whose cumulative tick range contains
// phase. It reports false once phase runs past the last frame.
func SelectFrame(frames []Frame, phase int, tickRate float64) (int, bool) {
	sum := 0
	for _, f := range frames {
		sum = int(float64(sum) + frameTicks(f, tickRate))
		if sum > phase {
			return f.GID, true
		}
	}
	return 0, false
}

// CycleTicks is the length of a full animation cycle in ticks.
func CycleTicks(frames []Frame, tickRate float64) int {
	sum := 0
	for _, f := range frames {
		sum = int(float64(sum) + frameTicks(f, tickRate))
	}
	return sum
}

// Step advances the tile's phase by one tick and returns the tileset-local
// frame id to draw. Past the last frame the phase wraps to 0 and the first
// frame is shown.
func (t *Tile) Step(frames []Frame, tickRate float64) int {
	if len(frames) == 0 {
		return 0
	}
	t.Phase++
	if gid, ok := SelectFrame(frames, t.Phase, tickRate); ok {
		return gid
	}
	t.Phase = 0
	return frames[0].GID
}
