// Package ball implements the stress-ball deformation engine.
//
// A Mesh holds a sphere's rest and displaced vertex buffers. Presses and
// drags become Deformation records: one live press that tracks the pointer
// and a bounded DeformationSet of dents that fade out over time. Every frame
// the Simulator relaxes the displaced buffer toward rest, pushes vertices
// inward under the press and the fading dents, decays the set and
// recomputes normals. The Controller is the press/drag/release state
// machine that feeds all of this from pointer input, and the Mapper turns
// screen coordinates into surface hits and light positions.
//
// Everything here runs on the frame-loop goroutine; nothing is locked.
package ball
