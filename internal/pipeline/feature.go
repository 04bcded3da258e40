package pipeline

import "strings"

// String returns a readable rendering of the bitmask, e.g.
// "magnifier+touch-exploration".
func (f Feature) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f&FeatureScreenMagnifier != 0 {
		parts = append(parts, "magnifier")
	}
	if f&FeatureTouchExploration != 0 {
		parts = append(parts, "touch-exploration")
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "+")
}
