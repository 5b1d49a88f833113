package stressball

import (
	"github.com/Faultbox/squeeze/internal/ball"
	"github.com/Faultbox/squeeze/internal/engine/ui2d"
)

// Ring radii as fractions of the element side, before the ring scale.
var ringRadii = [...]float32{0.3, 0.34, 0.38}

const (
	ringThickness = 2

	barWidthFraction = 0.6
	barHeight        = 6
	barMargin        = 16
)

// buildOverlay queues the pressure rings around the element and the
// pressure bar along the bottom of the window.
func buildOverlay(b *ui2d.Batch, element ball.Rect, winW, winH int, v *Visuals, pressure float32, color [3]float32) {
	if alpha := v.RingOpacity(); alpha > 0 {
		cx := element.X + element.W/2
		cy := element.Y + element.H/2
		ring := ui2d.FromFloat3(color).Lighten(0.3).WithAlpha(alpha)
		for _, r := range ringRadii {
			b.AddRing(cx, cy, r*element.W*v.RingScale(), ringThickness, ring)
		}
	}

	barW := float32(winW) * barWidthFraction
	x := (float32(winW) - barW) / 2
	y := float32(winH) - barMargin - barHeight
	b.AddRect(x, y, barW, barHeight, ui2d.ColorBarTrack)

	p := pressure
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	b.AddRect(x, y, barW*p, barHeight, ui2d.FromFloat3(color).WithAlpha(0.9))
}
