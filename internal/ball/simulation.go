package ball

// Params holds the simulation tunables.
type Params struct {
	Smoothing      float32 // fraction of the rest offset recovered per frame
	Depth          float32 // inward travel at full falloff, rest-space units
	FadeRate       float32 // per-frame intensity multiplier for fading dents
	RadiusFadeRate float32 // per-frame radius multiplier for fading dents
	MinIntensity   float32 // dents at or below this are dropped
	IdleHalfRate   bool    // skip every other frame while nothing is pressed
}

// Simulator advances the mesh one frame at a time. It is the only writer of
// the mesh's displaced buffer and of the deformation set's decay state.
type Simulator struct {
	mesh   *Mesh
	set    *DeformationSet
	params Params
	frame  uint64
}

// NewSimulator creates a simulator over mesh and set.
func NewSimulator(mesh *Mesh, set *DeformationSet, params Params) *Simulator {
	return &Simulator{mesh: mesh, set: set, params: params}
}

// Step runs one frame. press is the live press dent, or nil when the pointer
// is up or the press missed the ball; pressing reports whether the pointer is
// down at all. It returns false when the frame was skipped by the idle
// half-rate policy.
func (s *Simulator) Step(press *Deformation, pressing bool) bool {
	s.frame++
	if s.params.IdleHalfRate && !pressing && s.frame%2 == 0 {
		return false
	}

	s.relax()
	if pressing && press != nil {
		s.applyPress(*press)
	}
	for _, d := range s.set.Records() {
		s.applyFading(d)
	}
	s.set.DecayAll(s.params.FadeRate, s.params.RadiusFadeRate, s.params.MinIntensity)
	s.mesh.ComputeNormals()
	return true
}

// Reset snaps the mesh back to rest and drops every fading dent.
func (s *Simulator) Reset() {
	s.set.Clear()
	s.mesh.ResetToRest()
}

// relax blends every displaced vertex toward its rest position.
func (s *Simulator) relax() {
	rest := s.mesh.Rest()
	disp := s.mesh.Displaced()
	k := s.params.Smoothing
	for i := range disp {
		disp[i] = disp[i].Lerp(rest[i], k)
	}
}

// applyPress places vertices under the press at a fixed depth below rest.
// The press is absolute: a held press keeps a constant dent depth.
func (s *Simulator) applyPress(d Deformation) {
	rest := s.mesh.Rest()
	disp := s.mesh.Displaced()
	r2 := d.Radius * d.Radius
	for i, p := range rest {
		if p.DistanceSq(d.Center) >= r2 {
			continue
		}
		f := Falloff(p.Distance(d.Center), d.Radius, d.Intensity)
		disp[i] = p.Add(s.mesh.Inward(i).Scale(f * s.params.Depth))
	}
}

// applyFading pushes vertices under a fading dent further inward, on top of
// whatever this frame has already written.
func (s *Simulator) applyFading(d Deformation) {
	rest := s.mesh.Rest()
	disp := s.mesh.Displaced()
	r2 := d.Radius * d.Radius
	for i, p := range rest {
		if p.DistanceSq(d.Center) >= r2 {
			continue
		}
		f := Falloff(p.Distance(d.Center), d.Radius, d.Intensity)
		disp[i] = disp[i].Add(s.mesh.Inward(i).Scale(f * s.params.Depth))
	}
}
