// Package render draws ingested datasets to a static PNG preview.
//
// Camera state lives in a ViewState owned by the caller and passed into each
// draw call; nothing here keeps global view state.
package render

import (
	"math"

	"github.com/paulmach/orb"
)

// ViewState is the camera: the map point at the image centre, the number of
// map units per pixel, and the image size in pixels.
type ViewState struct {
	Center        orb.Point
	UnitsPerPixel float64
	Width, Height int
}

// Fit returns a view showing all of b in a width by height image with a
// margin of padding pixels on every side.
func Fit(b orb.Bound, width, height, padding int) ViewState {
	v := ViewState{Center: b.Center(), Width: width, Height: height, UnitsPerPixel: 1}
	w := float64(width - 2*padding)
	h := float64(height - 2*padding)
	if w <= 0 || h <= 0 {
		return v
	}
	upp := math.Max((b.Max[0]-b.Min[0])/w, (b.Max[1]-b.Min[1])/h)
	if upp > 0 {
		v.UnitsPerPixel = upp
	}
	return v
}

// Bound is the map area covered by the image.
func (v *ViewState) Bound() orb.Bound {
	hw := float64(v.Width) / 2 * v.UnitsPerPixel
	hh := float64(v.Height) / 2 * v.UnitsPerPixel
	return orb.Bound{
		Min: orb.Point{v.Center[0] - hw, v.Center[1] - hh},
		Max: orb.Point{v.Center[0] + hw, v.Center[1] + hh},
	}
}

// ToScreen maps a map point to pixel coordinates with the origin at the
// top left and y pointing down.
func (v *ViewState) ToScreen(p orb.Point) (float64, float64) {
	b := v.Bound()
	return (p[0] - b.Min[0]) / v.UnitsPerPixel, (b.Max[1] - p[1]) / v.UnitsPerPixel
}

// Zoom scales the view about its centre. factor > 1 zooms in.
func (v *ViewState) Zoom(factor float64) {
	if factor > 0 {
		v.UnitsPerPixel /= factor
	}
}

// Pan moves the centre by dx, dy pixels.
func (v *ViewState) Pan(dx, dy float64) {
	v.Center[0] += dx * v.UnitsPerPixel
	v.Center[1] -= dy * v.UnitsPerPixel
}
