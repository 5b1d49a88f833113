package ball

// Falloff returns the weight of a dent of the given radius and intensity at
// distance d from its center: a linear ramp scaled by intensity, passed
// through smoothstep and squared so the rim of the dent has no visible edge.
// It is zero at and beyond the radius.
func Falloff(d, radius, intensity float32) float32 {
	if radius <= 0 || d >= radius {
		return 0
	}
	influence := (1 - d/radius) * intensity
	if influence <= 0 {
		return 0
	}
	s := influence * influence * (3 - 2*influence)
	return s * s
}
