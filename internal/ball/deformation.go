package ball

import (
	"time"

	"github.com/Faultbox/squeeze/pkg/math"
)

// Deformation is one localized inward dent.
type Deformation struct {
	Center    math.Vec3
	Intensity float32 // 0..1
	Radius    float32 // > 0, rest-space units
	CreatedAt time.Time
}

// Default deformation shapes.
const (
	PressIntensity = 0.8
	PressRadius    = 0.35
	TrailRadius    = 0.25

	DefaultMaxDeformations  = 30
	DefaultTrimDeformations = 25
)

// DeformationSet is the ordered collection of fading dents, oldest first.
// It is a soft cap: an insertion that pushes it past the limit trims it back to
// the floor, so a long drag doesn't trim on every sample.
type DeformationSet struct {
	records []Deformation
	limit   int
	floor   int
}

// NewDeformationSet creates an empty set with the given cap and floor.
// A floor above the cap is lowered to the cap.
func NewDeformationSet(limit, floor int) *DeformationSet {
	if limit < 1 {
		limit = DefaultMaxDeformations
	}
	if floor < 0 || floor > limit {
		floor = limit
	}
	return &DeformationSet{
		records: make([]Deformation, 0, limit+1),
		limit:   limit,
		floor:   floor,
	}
}

// Cap returns the size above which an insertion trims the set.
func (s *DeformationSet) Cap() int {
	return s.limit
}

// Add appends d as the most recent record.
func (s *DeformationSet) Add(d Deformation) {
	s.records = append(s.records, d)
	if len(s.records) > s.limit {
		drop := len(s.records) - s.floor
		n := copy(s.records, s.records[drop:])
		clear(s.records[n:])
		s.records = s.records[:n]
	}
}

// DecayAll shrinks every record's intensity and radius multiplicatively and
// removes records whose intensity fell to minIntensity or below. Order is
// preserved.
func (s *DeformationSet) DecayAll(fadeRate, radiusFadeRate, minIntensity float32) {
	kept := s.records[:0]
	for _, d := range s.records {
		d.Intensity *= fadeRate
		d.Radius *= radiusFadeRate
		if d.Intensity <= minIntensity {
			continue
		}
		kept = append(kept, d)
	}
	// Zero the tail so dropped records don't linger in the backing array.
	for i := len(kept); i < len(s.records); i++ {
		s.records[i] = Deformation{}
	}
	s.records = kept
}

// Len returns the number of active records.
func (s *DeformationSet) Len() int {
	return len(s.records)
}

// Records returns the active records, oldest first. The slice is only valid
// until the next Add, DecayAll or Clear and must not be modified.
func (s *DeformationSet) Records() []Deformation {
	return s.records
}

// Clear removes every record.
func (s *DeformationSet) Clear() {
	clear(s.records)
	s.records = s.records[:0]
}
