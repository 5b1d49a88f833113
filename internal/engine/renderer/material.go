package renderer

// Material is the Phong surface of the ball.
type Material struct {
	Color             [3]float32
	Emissive          [3]float32
	EmissiveIntensity float32
	Specular          [3]float32
	Shininess         float32
	Opacity           float32
}

// DefaultMaterial returns the translucent rubber look for a base color.
func DefaultMaterial(color [3]float32, opacity float32) Material {
	return Material{
		Color:             color,
		Emissive:          [3]float32{0, 0x11 / 255.0, 0x22 / 255.0},
		EmissiveIntensity: 0.1,
		Specular:          [3]float32{0x11 / 255.0, 0x11 / 255.0, 0x11 / 255.0},
		Shininess:         40,
		Opacity:           clamp01(opacity),
	}
}

// EmissiveTerm returns the emissive color scaled by its intensity.
func (m Material) EmissiveTerm() [3]float32 {
	return [3]float32{
		m.Emissive[0] * m.EmissiveIntensity,
		m.Emissive[1] * m.EmissiveIntensity,
		m.Emissive[2] * m.EmissiveIntensity,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
