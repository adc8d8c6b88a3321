package segment

// Find returns the index of the first segment whose window contains t.
// Overlapping windows are not rejected; the lowest index wins.
func Find(segments []Segment, t float64) (int, bool) {
	for i, s := range segments {
		if s.Contains(t) {
			return i, true
		}
	}
	return -1, false
}
